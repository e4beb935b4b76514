package generate

import "context"

//go:generate mockgen -source=service.go -destination=mock_content_service.go -package=generate

// BatchRequest is one bulk request for a single AI column: the column's
// prompt, the number of rows to fill, up to a handful of original sample
// values, and one context string per row describing that row's dependency
// values.
type BatchRequest struct {
	Prompt      string
	Count       int
	Examples    []string
	RowContexts []string
}

// ContentService produces creative values in bulk. Implementations return
// up to Count values in row order; short responses and outright failures
// are tolerated by the caller, which fills the shortfall itself.
type ContentService interface {
	GenerateBatch(ctx context.Context, req BatchRequest) ([]string, error)
}

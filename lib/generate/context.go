package generate

// RowContext carries the per-row state resolvers may consult: the row's
// 0-based index within its table, and the parent row index already chosen
// for this row per parent table id. Memoizing the chosen parent row on the
// context keeps every linked column that references the same parent table
// pointing at the same parent row.
type RowContext struct {
	RowIndex              int
	ResolvedParentIndices map[string]int
}

func NewRowContext(rowIndex int) *RowContext {
	return &RowContext{
		RowIndex:              rowIndex,
		ResolvedParentIndices: map[string]int{},
	}
}

package ir

import (
	"strings"
)

// DefaultRevisionSchema is the token pool used by revision columns that do
// not configure their own schema.
const DefaultRevisionSchema = "-, A, B, C, D"

type Column struct {
	ID             string
	Name           string
	Type           DataType
	Rule           Rule
	SampleValues   []string
	RevisionSchema string
}

func (self *Column) IdentityMatches(other *Column) bool {
	if self == nil || other == nil {
		return false
	}
	return strings.EqualFold(self.Name, other.Name)
}

// RevisionTokens splits the column's revision schema (or the default) on
// commas and trims each token.
func (self *Column) RevisionTokens() []string {
	schema := self.RevisionSchema
	if strings.TrimSpace(schema) == "" {
		schema = DefaultRevisionSchema
	}
	parts := strings.Split(schema, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

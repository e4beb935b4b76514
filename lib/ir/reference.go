package ir

// ReferenceFile is an ordered pool of seed values uploaded alongside the
// schema, drawn from by reference-strategy columns.
type ReferenceFile struct {
	ID     string
	Name   string
	Values []string
}

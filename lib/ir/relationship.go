package ir

// Relationship links a child table's FK-bearing column (the source side) to
// a parent table's key column (the target side).
type Relationship struct {
	ID             string
	SourceTableID  string
	SourceColumnID string
	TargetTableID  string
	TargetColumnID string
	Cardinality    Cardinality
}

// SelfReferencing reports whether both endpoints are the same table. Such
// relationships are excluded from table ordering to avoid spurious cycles.
func (self *Relationship) SelfReferencing() bool {
	return self.SourceTableID == self.TargetTableID
}

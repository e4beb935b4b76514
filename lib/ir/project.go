package ir

import (
	"fmt"
)

// Project is the immutable schema snapshot a generation run operates on:
// tables with typed generation rules, relationships between them, and
// uploaded reference value pools. It is supplied once at run start; rule
// derivation happens at load time, never mid-run.
type Project struct {
	Tables         []*Table
	Relationships  []*Relationship
	ReferenceFiles []*ReferenceFile
}

func (self *Project) TryGetTableByID(id string) *Table {
	if self == nil {
		return nil
	}
	for _, table := range self.Tables {
		if table.ID == id {
			return table
		}
	}
	return nil
}

func (self *Project) AddTable(table *Table) {
	self.Tables = append(self.Tables, table)
}

func (self *Project) TryGetReferenceFileByID(id string) *ReferenceFile {
	if self == nil {
		return nil
	}
	for _, file := range self.ReferenceFiles {
		if file.ID == id {
			return file
		}
	}
	return nil
}

func (self *Project) AddReferenceFile(file *ReferenceFile) {
	self.ReferenceFiles = append(self.ReferenceFiles, file)
}

func (self *Project) AddRelationship(rel *Relationship) {
	self.Relationships = append(self.Relationships, rel)
}

func (self *Project) TryGetRelationship(sourceTableID, targetTableID string) *Relationship {
	if self == nil {
		return nil
	}
	for _, rel := range self.Relationships {
		if rel.SourceTableID == sourceTableID && rel.TargetTableID == targetTableID {
			return rel
		}
	}
	return nil
}

// DeriveLinkedRules rewrites the source column of every 1:1 and 1:N
// relationship to a LinkedRule pointing at the relationship's target,
// keeping FK columns aligned with their parent key column. A column that
// already carries a configured LinkedRule is treated as a manual override
// and left alone. N:M relationships are never derived; Validate requires
// those links to be configured by hand.
func (self *Project) DeriveLinkedRules() {
	for _, rel := range self.Relationships {
		if rel.Cardinality.Equals(CardinalityNToM) {
			continue
		}
		column := self.TryGetTableByID(rel.SourceTableID).TryGetColumnByID(rel.SourceColumnID)
		if column == nil {
			continue
		}
		if linked, ok := column.Rule.(LinkedRule); ok && linked.Configured() {
			continue
		}
		column.Rule = LinkedRule{TableID: rel.TargetTableID, ColumnID: rel.TargetColumnID}
	}
}

// Validate reports structural errors: duplicate identities, dangling
// relationship endpoints, per-parent tables without a driving parent, N:M
// relationships without a hand-configured link, and AI dependency cycles.
// Soft configuration gaps (empty reference files, unconfigured links) are
// not errors here; they degrade to sentinel values during generation.
func (self *Project) Validate() []error {
	out := []error{}

	for i, table := range self.Tables {
		out = append(out, self.validateTable(table)...)
		for _, other := range self.Tables[i+1:] {
			if table.ID == other.ID {
				out = append(out, fmt.Errorf("found two tables with id %q", table.ID))
			}
			if table.IdentityMatches(other) {
				out = append(out, fmt.Errorf("found two tables with name %q", table.Name))
			}
		}
	}

	for i, file := range self.ReferenceFiles {
		for _, other := range self.ReferenceFiles[i+1:] {
			if file.ID == other.ID {
				out = append(out, fmt.Errorf("found two reference files with id %q", file.ID))
			}
		}
	}

	for _, rel := range self.Relationships {
		out = append(out, self.validateRelationship(rel)...)
	}

	return out
}

func (self *Project) validateTable(table *Table) []error {
	out := []error{}

	for i, column := range table.Columns {
		for _, other := range table.Columns[i+1:] {
			if column.ID == other.ID {
				out = append(out, fmt.Errorf("table %q has two columns with id %q", table.Name, column.ID))
			}
			if column.IdentityMatches(other) {
				out = append(out, fmt.Errorf("table %q has two columns with name %q", table.Name, column.Name))
			}
		}
		if rule, ok := column.Rule.(AIRule); ok {
			for _, depID := range rule.DependsOn {
				if table.TryGetColumnByID(depID) == nil {
					out = append(out, fmt.Errorf("table %q column %q depends on unknown column id %q", table.Name, column.Name, depID))
				}
			}
		}
	}

	if table.Generation.Mode.Equals(GenerationModePerParent) {
		if table.Generation.DrivingParentTableID == "" {
			out = append(out, fmt.Errorf("table %q uses per-parent generation but names no driving parent table", table.Name))
		} else if self.TryGetTableByID(table.Generation.DrivingParentTableID) == nil {
			out = append(out, fmt.Errorf("table %q names unknown driving parent table id %q", table.Name, table.Generation.DrivingParentTableID))
		}
	}

	if _, err := table.AIDependencyOrder(); err != nil {
		out = append(out, err)
	}

	return out
}

func (self *Project) validateRelationship(rel *Relationship) []error {
	out := []error{}

	source := self.TryGetTableByID(rel.SourceTableID)
	if source == nil {
		out = append(out, fmt.Errorf("relationship %q names unknown source table id %q", rel.ID, rel.SourceTableID))
	} else if source.TryGetColumnByID(rel.SourceColumnID) == nil {
		out = append(out, fmt.Errorf("relationship %q names unknown source column id %q in table %q", rel.ID, rel.SourceColumnID, source.Name))
	}

	target := self.TryGetTableByID(rel.TargetTableID)
	if target == nil {
		out = append(out, fmt.Errorf("relationship %q names unknown target table id %q", rel.ID, rel.TargetTableID))
	} else if target.TryGetColumnByID(rel.TargetColumnID) == nil {
		out = append(out, fmt.Errorf("relationship %q names unknown target column id %q in table %q", rel.ID, rel.TargetColumnID, target.Name))
	}

	if rel.Cardinality.Equals(CardinalityNToM) && source != nil {
		if column := source.TryGetColumnByID(rel.SourceColumnID); column != nil {
			linked, ok := column.Rule.(LinkedRule)
			if !ok || !linked.Configured() {
				out = append(out, fmt.Errorf("N:M relationship %q is not derived automatically: configure a linked rule on column %q of table %q", rel.ID, column.Name, source.Name))
			}
		}
	}

	return out
}

// GenerationOrder produces the order tables are generated in, every
// relationship parent before its children, via Kahn's algorithm: in-degree
// counters over the parent -> child edges and a FIFO queue of zero-degree
// tables. Self-referencing relationships are excluded so they cannot make a
// table its own ancestor. If a genuine cycle leaves tables unordered they
// are appended in declared order and also returned as unresolved: the run
// proceeds, but referential integrity is not guaranteed for that subset.
func (self *Project) GenerationOrder() (order []*Table, unresolved []*Table) {
	inDegree := map[string]int{}
	children := map[string][]string{}
	for _, table := range self.Tables {
		inDegree[table.ID] = 0
	}
	for _, rel := range self.Relationships {
		if rel.SelfReferencing() {
			continue
		}
		if _, ok := inDegree[rel.SourceTableID]; !ok {
			continue
		}
		if _, ok := inDegree[rel.TargetTableID]; !ok {
			continue
		}
		inDegree[rel.SourceTableID]++
		children[rel.TargetTableID] = append(children[rel.TargetTableID], rel.SourceTableID)
	}

	queue := []*Table{}
	for _, table := range self.Tables {
		if inDegree[table.ID] == 0 {
			queue = append(queue, table)
		}
	}

	order = make([]*Table, 0, len(self.Tables))
	placed := map[string]bool{}
	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]
		order = append(order, table)
		placed[table.ID] = true
		for _, childID := range children[table.ID] {
			inDegree[childID]--
			if inDegree[childID] == 0 {
				queue = append(queue, self.TryGetTableByID(childID))
			}
		}
	}

	for _, table := range self.Tables {
		if !placed[table.ID] {
			order = append(order, table)
			unresolved = append(unresolved, table)
		}
	}
	return order, unresolved
}

package ir

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/rowforge/rowforge/lib/util"
)

// Row count defaults applied when GenerationSettings leaves them unset.
const (
	DefaultFixedCount   = 100
	DefaultMinPerParent = 1
	DefaultMaxPerParent = 5
)

type Table struct {
	ID         string
	Name       string
	Columns    []*Column
	Generation GenerationSettings
}

// GenerationSettings controls how many rows a table receives. Fixed mode
// produces FixedCount rows in one batch; per-parent mode produces a random
// count in [MinPerParent, MaxPerParent] for every generated row of the
// driving parent table.
type GenerationSettings struct {
	Mode                 GenerationMode
	FixedCount           util.Opt[int]
	MinPerParent         util.Opt[int]
	MaxPerParent         util.Opt[int]
	DrivingParentTableID string
}

func (self *Table) IdentityMatches(other *Table) bool {
	if self == nil || other == nil {
		return false
	}
	return strings.EqualFold(self.Name, other.Name)
}

func (self *Table) TryGetColumnByID(id string) *Column {
	if self == nil {
		return nil
	}
	for _, column := range self.Columns {
		if column.ID == id {
			return column
		}
	}
	return nil
}

func (self *Table) AddColumn(column *Column) {
	self.Columns = append(self.Columns, column)
}

// AIColumns returns the table's AI-strategy columns in declared order.
func (self *Table) AIColumns() []*Column {
	out := []*Column{}
	for _, column := range self.Columns {
		if KindOf(column.Rule) == RuleKindAI {
			out = append(out, column)
		}
	}
	return out
}

type visitColor int

const (
	colorWhite visitColor = iota
	colorGray
	colorBlack
)

// AIDependencyOrder returns the table's AI columns ordered so that every
// column follows the AI columns it declares a dependency on, via
// depth-first traversal. Dependencies on non-AI columns are materialized
// before any AI column runs, so they do not constrain the order. A
// dependency cycle is rejected with an error naming the cycle path.
func (self *Table) AIDependencyOrder() ([]*Column, error) {
	colors := map[string]visitColor{}
	order := []*Column{}
	path := []string{}

	var visit func(column *Column) error
	visit = func(column *Column) error {
		switch colors[column.ID] {
		case colorBlack:
			return nil
		case colorGray:
			return errors.Errorf("ai dependency cycle in table %s: %s",
				self.Name, strings.Join(append(path, column.Name), " -> "))
		}
		colors[column.ID] = colorGray
		path = append(path, column.Name)
		rule, _ := column.Rule.(AIRule)
		for _, depID := range rule.DependsOn {
			dep := self.TryGetColumnByID(depID)
			if dep == nil || KindOf(dep.Rule) != RuleKindAI {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		colors[column.ID] = colorBlack
		order = append(order, column)
		return nil
	}

	for _, column := range self.AIColumns() {
		if err := visit(column); err != nil {
			return nil, err
		}
	}
	return order, nil
}

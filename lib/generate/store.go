package generate

import (
	"github.com/pkg/errors"

	"github.com/rowforge/rowforge/lib/util"
)

// Store accumulates the generated values of finished tables: table id ->
// column id -> ordered values. Tables and columns iterate in insertion
// order. A table is written exactly once, by its own processing step, and
// is read-only to every table generated after it.
type Store struct {
	tables *util.OrderedMap[string, *util.OrderedMap[string, []string]]
}

func NewStore() *Store {
	return &Store{
		tables: util.NewOrderedMap[string, *util.OrderedMap[string, []string]](),
	}
}

func (self *Store) PutTable(tableID string, columns *util.OrderedMap[string, []string]) error {
	if self.tables.Has(tableID) {
		return errors.Errorf("table %s was already generated", tableID)
	}
	self.tables.Insert(tableID, columns)
	return nil
}

// Column returns the generated values of one column, or nil when the table
// or column has not been generated.
func (self *Store) Column(tableID, columnID string) []string {
	if !self.tables.Has(tableID) {
		return nil
	}
	return self.tables.Get(tableID).Get(columnID)
}

// RowCount reports the generated row count of a table, read from its first
// column; zero when the table is absent or has no columns.
func (self *Store) RowCount(tableID string) int {
	if !self.tables.Has(tableID) {
		return 0
	}
	columns := self.tables.Get(tableID)
	if columns.Len() == 0 {
		return 0
	}
	_, values := columns.GetIndex(0)
	return len(values)
}

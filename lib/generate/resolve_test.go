package generate

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testEngine(seed int64) *Engine {
	return NewEngine(zerolog.Nop(), rand.New(rand.NewSource(seed)), nil, nil)
}

func projectWith(tables ...*ir.Table) *ir.Project {
	project := &ir.Project{}
	for _, table := range tables {
		project.AddTable(table)
	}
	return project
}

func fixedTable(id, name string, count int, columns ...*ir.Column) *ir.Table {
	return &ir.Table{
		ID:      id,
		Name:    name,
		Columns: columns,
		Generation: ir.GenerationSettings{
			Mode:       ir.GenerationModeFixed,
			FixedCount: util.Some(count),
		},
	}
}

// generateTable materializes one table against the given store and records
// the result in it, so later tables can link against it.
func generateTable(t *testing.T, project *ir.Project, table *ir.Table, store *Store, seed int64) *tableRun {
	t.Helper()
	run := newTableRun(testEngine(seed), project, table, store, testNow)
	run.resolveNonAI()
	require.NoError(t, run.resolveAI(context.Background()))
	require.NoError(t, store.PutTable(table.ID, run.materialized()))
	return run
}

func TestResolveCopy_CyclesThroughSamples(t *testing.T) {
	table := fixedTable("t", "Products", 5,
		&ir.Column{ID: "c", Name: "name", SampleValues: []string{"Anvil", "Rope"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, []string{"Anvil", "Rope", "Anvil", "Rope", "Anvil"}, run.columns["c"])
}

func TestResolveCopy_EmptySamplesYieldEmptyValues(t *testing.T) {
	table := fixedTable("t", "Products", 3, &ir.Column{ID: "c", Name: "name"})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, []string{"", "", ""}, run.columns["c"])
}

func TestResolvePattern_HashRunsUseOneBasedPaddedIndex(t *testing.T) {
	table := fixedTable("t", "Orders", 8,
		&ir.Column{ID: "c", Name: "id", Rule: ir.PatternRule{Pattern: "ORD-####"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, "ORD-0001", run.columns["c"][0])
	assert.Equal(t, "ORD-0007", run.columns["c"][6])
}

func TestResolvePattern_MultipleHashRuns(t *testing.T) {
	table := fixedTable("t", "Items", 12,
		&ir.Column{ID: "c", Name: "id", Rule: ir.PatternRule{Pattern: "#-ITEM-###"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, "1-ITEM-001", run.columns["c"][0])
	assert.Equal(t, "12-ITEM-012", run.columns["c"][11])
}

func TestResolvePattern_WithoutHashAppendsRawIndex(t *testing.T) {
	table := fixedTable("t", "Items", 3,
		&ir.Column{ID: "c", Name: "sku", Rule: ir.PatternRule{Pattern: "SKU"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, []string{"SKU0", "SKU1", "SKU2"}, run.columns["c"])
}

func TestResolvePattern_UUID(t *testing.T) {
	table := fixedTable("t", "Items", 4,
		&ir.Column{ID: "c", Name: "id", Rule: ir.PatternRule{Pattern: "UUID"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	seen := map[string]bool{}
	for _, value := range run.columns["c"] {
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, value)
		seen[value] = true
	}
	assert.Len(t, seen, 4, "uuids are distinct")
}

func TestResolvePattern_Hex(t *testing.T) {
	table := fixedTable("t", "Items", 2,
		&ir.Column{ID: "c8", Name: "token8", Rule: ir.PatternRule{Pattern: "HEX-8"}},
		&ir.Column{ID: "c32", Name: "token32", Rule: ir.PatternRule{Pattern: "HEX"}},
		&ir.Column{ID: "c4", Name: "token4", Rule: ir.PatternRule{Pattern: "hex-4"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c8"] {
		assert.Regexp(t, `^[0-9A-F]{8}$`, value)
	}
	for _, value := range run.columns["c32"] {
		assert.Regexp(t, `^[0-9A-F]{32}$`, value)
	}
	for _, value := range run.columns["c4"] {
		assert.Regexp(t, `^[0-9A-F]{4}$`, value)
	}
}

func TestResolveRandom_DrawsFromOptions(t *testing.T) {
	table := fixedTable("t", "Items", 20,
		&ir.Column{ID: "c", Name: "status", Rule: ir.RandomRule{Options: []string{"open", "closed"}}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		assert.Contains(t, []string{"open", "closed"}, value)
	}
}

func TestResolveRandom_DefaultsToABC(t *testing.T) {
	table := fixedTable("t", "Items", 20,
		&ir.Column{ID: "c", Name: "grade", Rule: ir.RandomRule{}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		assert.Contains(t, []string{"A", "B", "C"}, value)
	}
}

func TestResolveRandom_MultiValueJoinsDistinctOptions(t *testing.T) {
	options := []string{"red", "green", "blue", "black"}
	table := fixedTable("t", "Items", 25,
		&ir.Column{
			ID:   "c",
			Name: "tags",
			Type: ir.DataTypeMultiValue,
			Rule: ir.RandomRule{Options: options, Delimiter: "|"},
		})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		parts := strings.Split(value, "|")
		assert.GreaterOrEqual(t, len(parts), 1)
		assert.LessOrEqual(t, len(parts), 3)
		seen := map[string]bool{}
		for _, part := range parts {
			assert.Contains(t, options, part)
			assert.False(t, seen[part], "parts are de-duplicated")
			seen[part] = true
		}
	}
}

func TestResolveReference_DrawsFromPool(t *testing.T) {
	table := fixedTable("t", "Items", 15,
		&ir.Column{ID: "c", Name: "city", Rule: ir.ReferenceRule{FileID: "f"}})
	project := projectWith(table)
	project.AddReferenceFile(&ir.ReferenceFile{ID: "f", Name: "cities", Values: []string{"Lyon", "Oslo", "Quito"}})
	run := generateTable(t, project, table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		assert.Contains(t, []string{"Lyon", "Oslo", "Quito"}, value)
	}
}

func TestResolveReference_MissingOrEmptyFileYieldsSentinel(t *testing.T) {
	table := fixedTable("t", "Items", 2,
		&ir.Column{ID: "missing", Name: "a", Rule: ir.ReferenceRule{FileID: "nope"}},
		&ir.Column{ID: "empty", Name: "b", Rule: ir.ReferenceRule{FileID: "f"}})
	project := projectWith(table)
	project.AddReferenceFile(&ir.ReferenceFile{ID: "f", Name: "empty"})
	run := generateTable(t, project, table, NewStore(), 1)
	assert.Equal(t, []string{SentinelMissingRef, SentinelMissingRef}, run.columns["missing"])
	assert.Equal(t, []string{SentinelMissingRef, SentinelMissingRef}, run.columns["empty"])
}

func TestResolveLinked_RowAlignedWithDrivingParent(t *testing.T) {
	parent := fixedTable("p", "Customers", 3,
		&ir.Column{ID: "p.id", Name: "id", Rule: ir.PatternRule{Pattern: "CUST-###"}})
	child := &ir.Table{
		ID:   "c",
		Name: "Orders",
		Columns: []*ir.Column{
			{ID: "c.fk", Name: "customerId", Rule: ir.LinkedRule{TableID: "p", ColumnID: "p.id"}},
		},
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
			MinPerParent:         util.Some(2),
			MaxPerParent:         util.Some(2),
			DrivingParentTableID: "p",
		},
	}
	project := projectWith(parent, child)
	project.AddRelationship(&ir.Relationship{
		ID:             "r",
		SourceTableID:  "c",
		SourceColumnID: "c.fk",
		TargetTableID:  "p",
		TargetColumnID: "p.id",
		Cardinality:    ir.CardinalityOneToN,
	})

	store := NewStore()
	generateTable(t, project, parent, store, 1)
	run := generateTable(t, project, child, store, 2)

	assert.Equal(t, []string{"CUST-001", "CUST-001", "CUST-002", "CUST-002", "CUST-003", "CUST-003"}, run.columns["c.fk"])
}

func TestResolveLinked_RandomParentMemoizedPerRow(t *testing.T) {
	parent := fixedTable("p", "Customers", 3,
		&ir.Column{ID: "p.id", Name: "id", Rule: ir.PatternRule{Pattern: "P-###"}},
		&ir.Column{ID: "p.code", Name: "code", Rule: ir.PatternRule{Pattern: "C-###"}})
	child := fixedTable("c", "Orders", 12,
		&ir.Column{ID: "c.fkid", Name: "customerId", Rule: ir.LinkedRule{TableID: "p", ColumnID: "p.id"}},
		&ir.Column{ID: "c.fkcode", Name: "customerCode", Rule: ir.LinkedRule{TableID: "p", ColumnID: "p.code"}})
	project := projectWith(parent, child)

	store := NewStore()
	parentRun := generateTable(t, project, parent, store, 1)
	run := generateTable(t, project, child, store, 2)

	ids := parentRun.columns["p.id"]
	codes := parentRun.columns["p.code"]
	for row := 0; row < 12; row++ {
		idIndex := util.IndexOf(ids, run.columns["c.fkid"][row])
		codeIndex := util.IndexOf(codes, run.columns["c.fkcode"][row])
		require.GreaterOrEqual(t, idIndex, 0)
		assert.Equal(t, idIndex, codeIndex, "row %d reads both columns from the same parent row", row)
	}
}

func TestResolveLinked_UnconfiguredYieldsSentinel(t *testing.T) {
	table := fixedTable("t", "Orders", 2,
		&ir.Column{ID: "c", Name: "customerId", Rule: ir.LinkedRule{}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, []string{SentinelUnconfiguredLink, SentinelUnconfiguredLink}, run.columns["c"])
}

func TestResolveLinked_MissingParentDataYieldsSentinel(t *testing.T) {
	table := fixedTable("t", "Orders", 2,
		&ir.Column{ID: "c", Name: "customerId", Rule: ir.LinkedRule{TableID: "ghost", ColumnID: "ghost.id"}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	assert.Equal(t, []string{SentinelMissingSourceVal, SentinelMissingSourceVal}, run.columns["c"])
}

func TestResolveLinked_OrphanWhenDrivingParentUnplanned(t *testing.T) {
	parent := fixedTable("p", "Customers", 3, &ir.Column{ID: "p.id", Name: "id"})
	child := &ir.Table{
		ID:   "c",
		Name: "Orders",
		Columns: []*ir.Column{
			{ID: "c.fk", Name: "customerId", Rule: ir.LinkedRule{TableID: "p", ColumnID: "p.id"}},
		},
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
			FixedCount:           util.Some(4),
			DrivingParentTableID: "p",
		},
	}
	project := projectWith(parent, child)
	project.AddRelationship(&ir.Relationship{
		ID:             "r",
		SourceTableID:  "c",
		SourceColumnID: "c.fk",
		TargetTableID:  "p",
		TargetColumnID: "p.id",
		Cardinality:    ir.CardinalityOneToN,
	})

	// parent never generated: the planner falls back to a fixed-size job
	// and every row is an orphan
	run := generateTable(t, project, child, NewStore(), 1)
	assert.Equal(t, 4, run.total)
	for _, value := range run.columns["c.fk"] {
		assert.Equal(t, SentinelOrphan, value)
	}
}

func TestResolveRevision_DefaultSchema(t *testing.T) {
	table := fixedTable("t", "Parts", 20,
		&ir.Column{ID: "c", Name: "rev", Rule: ir.RevisionRule{}})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		assert.Contains(t, []string{"-", "A", "B", "C", "D"}, value)
	}
}

func TestResolveRevision_CustomSchema(t *testing.T) {
	table := fixedTable("t", "Parts", 10,
		&ir.Column{ID: "c", Name: "rev", Rule: ir.RevisionRule{}, RevisionSchema: "X, Y"})
	run := generateTable(t, projectWith(table), table, NewStore(), 1)
	for _, value := range run.columns["c"] {
		assert.Contains(t, []string{"X", "Y"}, value)
	}
}

func TestEvaluationOrder_OrdersIntraRowDependencies(t *testing.T) {
	table := fixedTable("t", "Jobs", 1,
		&ir.Column{ID: "dur", Name: "runtime", Type: ir.DataTypeNumber,
			Rule: ir.DurationRule{StartColumnID: "start", EndColumnID: "end", Unit: ir.DurationUnitHours}},
		&ir.Column{ID: "mod", Name: "modifiedAt", Type: ir.DataTypeDateTime},
		&ir.Column{ID: "start", Name: "startRaw"},
		&ir.Column{ID: "end", Name: "endRaw"},
		&ir.Column{ID: "crt", Name: "createdAt", Type: ir.DataTypeDateTime})
	run := newTableRun(testEngine(1), projectWith(table), table, NewStore(), testNow)

	ids := util.Map(run.evaluationOrder(), func(c *ir.Column) string { return c.ID })
	assert.Len(t, ids, 5)
	assert.Less(t, util.IndexOf(ids, "start"), util.IndexOf(ids, "dur"))
	assert.Less(t, util.IndexOf(ids, "end"), util.IndexOf(ids, "dur"))
	assert.Less(t, util.IndexOf(ids, "crt"), util.IndexOf(ids, "mod"))
}

func TestTableRun_AllColumnsEndRowConsistent(t *testing.T) {
	table := fixedTable("t", "Mixed", 9,
		&ir.Column{ID: "c1", Name: "id", Rule: ir.PatternRule{Pattern: "ID-##"}},
		&ir.Column{ID: "c2", Name: "status", Rule: ir.RandomRule{}},
		&ir.Column{ID: "c3", Name: "note"},
		&ir.Column{ID: "c4", Name: "rev", Rule: ir.RevisionRule{}},
		&ir.Column{ID: "c5", Name: "when", Type: ir.DataTypeDateTime},
		&ir.Column{ID: "c6", Name: "blurb", Rule: ir.AIRule{Prompt: "say something"}})
	store := NewStore()
	generateTable(t, projectWith(table), table, store, 1)

	assert.Equal(t, 9, store.RowCount("t"))
	for _, column := range table.Columns {
		assert.Len(t, store.Column("t", column.ID), 9, "column %s", column.Name)
	}
}

package generate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

func TestPlanRows_FixedModeDefaultsTo100(t *testing.T) {
	table := &ir.Table{ID: "t", Name: "Widgets", Generation: ir.GenerationSettings{Mode: ir.GenerationModeFixed}}
	jobs := PlanRows(projectWith(table), table, NewStore(), rand.New(rand.NewSource(1)))
	require.Len(t, jobs, 1)
	assert.Equal(t, Job{DrivingID: "", ParentRowIndex: -1, Count: 100}, jobs[0])
}

func TestPlanRows_FixedModeUsesConfiguredCount(t *testing.T) {
	table := fixedTable("t", "Widgets", 7)
	jobs := PlanRows(projectWith(table), table, NewStore(), rand.New(rand.NewSource(1)))
	require.Len(t, jobs, 1)
	assert.Equal(t, 7, jobs[0].Count)
	assert.Equal(t, 7, TotalRows(jobs))
}

func TestPlanRows_PerParentEmitsOneJobPerParentRow(t *testing.T) {
	parent := fixedTable("p", "Customers", 4, &ir.Column{ID: "p.id", Name: "id"})
	child := &ir.Table{
		ID:   "c",
		Name: "Orders",
		Columns: []*ir.Column{
			{ID: "c.fk", Name: "customerId"},
		},
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
			MinPerParent:         util.Some(2),
			MaxPerParent:         util.Some(3),
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
	require.NoError(t, store.PutTable("p", util.NewOrderedMap[string, []string]().
		Insert("p.id", []string{"A", "B", "C", "D"})))

	jobs := PlanRows(project, child, store, rand.New(rand.NewSource(3)))
	require.Len(t, jobs, 4)
	total := 0
	for i, job := range jobs {
		assert.Equal(t, i, job.ParentRowIndex)
		assert.GreaterOrEqual(t, job.Count, 2)
		assert.LessOrEqual(t, job.Count, 3)
		total += job.Count
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, util.Map(jobs, func(j Job) string { return j.DrivingID }))
	assert.Equal(t, total, TotalRows(jobs))
}

func TestPlanRows_PerParentWithoutRelationshipFallsBack(t *testing.T) {
	child := &ir.Table{
		ID:   "c",
		Name: "Orders",
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
			FixedCount:           util.Some(5),
			DrivingParentTableID: "p",
		},
	}
	jobs := PlanRows(projectWith(child), child, NewStore(), rand.New(rand.NewSource(1)))
	require.Len(t, jobs, 1)
	assert.Equal(t, -1, jobs[0].ParentRowIndex)
	assert.Equal(t, 5, jobs[0].Count)
}

func TestPlanRows_PerParentWithoutParentDataFallsBack(t *testing.T) {
	parent := fixedTable("p", "Customers", 4, &ir.Column{ID: "p.id", Name: "id"})
	child := &ir.Table{
		ID:      "c",
		Name:    "Orders",
		Columns: []*ir.Column{{ID: "c.fk", Name: "customerId"}},
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
			FixedCount:           util.Some(3),
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

	// the parent table never generated
	jobs := PlanRows(project, child, NewStore(), rand.New(rand.NewSource(1)))
	require.Len(t, jobs, 1)
	assert.Equal(t, Job{DrivingID: "", ParentRowIndex: -1, Count: 3}, jobs[0])
}

func TestPlanRows_EmptyParentYieldsNoJobs(t *testing.T) {
	parent := fixedTable("p", "Customers", 0, &ir.Column{ID: "p.id", Name: "id"})
	child := &ir.Table{
		ID:      "c",
		Name:    "Orders",
		Columns: []*ir.Column{{ID: "c.fk", Name: "customerId"}},
		Generation: ir.GenerationSettings{
			Mode:                 ir.GenerationModePerParent,
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
	require.NoError(t, store.PutTable("p", util.NewOrderedMap[string, []string]().
		Insert("p.id", []string{})))

	jobs := PlanRows(project, child, store, rand.New(rand.NewSource(1)))
	assert.Empty(t, jobs)
	assert.Equal(t, 0, TotalRows(jobs))
}

package generate

import (
	"math/rand"

	"github.com/rowforge/rowforge/lib/ir"
)

// Job is one planned batch of rows. Per-parent tables get one job per
// driving parent row, carrying that parent's generated key value and row
// index; fixed tables get a single job with no parent attached.
type Job struct {
	DrivingID      string
	ParentRowIndex int
	Count          int
}

// TotalRows sums the row counts of all jobs.
func TotalRows(jobs []Job) int {
	total := 0
	for _, job := range jobs {
		total += job.Count
	}
	return total
}

// PlanRows decides how many rows a table receives and which parent row each
// batch is attached to. Fixed mode yields one job of FixedCount rows.
// Per-parent mode draws a count in [MinPerParent, MaxPerParent] for every
// generated row of the driving parent; when the driving relationship or the
// parent's generated key column cannot be found it degrades to a single
// fixed-size job so linked columns surface the gap as sentinels instead of
// aborting the run.
func PlanRows(project *ir.Project, table *ir.Table, store *Store, rng *rand.Rand) []Job {
	settings := table.Generation
	fixed := func() []Job {
		return []Job{{
			ParentRowIndex: -1,
			Count:          settings.FixedCount.GetOr(ir.DefaultFixedCount),
		}}
	}
	if !settings.Mode.Equals(ir.GenerationModePerParent) {
		return fixed()
	}
	rel := project.TryGetRelationship(table.ID, settings.DrivingParentTableID)
	if rel == nil {
		return fixed()
	}
	drivingIDs := store.Column(rel.TargetTableID, rel.TargetColumnID)
	if drivingIDs == nil {
		return fixed()
	}
	min := settings.MinPerParent.GetOr(ir.DefaultMinPerParent)
	max := settings.MaxPerParent.GetOr(ir.DefaultMaxPerParent)
	if max < min {
		max = min
	}
	jobs := make([]Job, len(drivingIDs))
	for i, drivingID := range drivingIDs {
		jobs[i] = Job{
			DrivingID:      drivingID,
			ParentRowIndex: i,
			Count:          min + rng.Intn(max-min+1),
		}
	}
	return jobs
}

package generate

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

var defaultRandomOptions = []string{"A", "B", "C"}

// tableRun is the working state of one table's generation pass: the planner
// jobs, one RowContext per output row, and the column value slices as they
// fill in. It is discarded once the table's columns land in the store.
type tableRun struct {
	eng      *Engine
	project  *ir.Project
	table    *ir.Table
	store    *Store
	rng      *rand.Rand
	now      time.Time
	jobs     []Job
	total    int
	contexts []*RowContext
	rowJob   []Job
	columns  map[string][]string
}

func newTableRun(eng *Engine, project *ir.Project, table *ir.Table, store *Store, now time.Time) *tableRun {
	run := &tableRun{
		eng:     eng,
		project: project,
		table:   table,
		store:   store,
		rng:     eng.rand,
		now:     now,
		columns: map[string][]string{},
	}
	run.jobs = PlanRows(project, table, store, run.rng)
	run.total = TotalRows(run.jobs)
	run.contexts = make([]*RowContext, 0, run.total)
	run.rowJob = make([]Job, 0, run.total)
	for _, job := range run.jobs {
		for i := 0; i < job.Count; i++ {
			run.contexts = append(run.contexts, NewRowContext(len(run.contexts)))
			run.rowJob = append(run.rowJob, job)
		}
	}
	return run
}

// resolveNonAI fills every non-AI column for all planned rows in a single
// row-major pass, visiting columns in evaluation order so intra-row
// references read already-resolved cells.
func (self *tableRun) resolveNonAI() {
	order := self.evaluationOrder()
	for _, column := range order {
		self.columns[column.ID] = make([]string, self.total)
	}
	for row := 0; row < self.total; row++ {
		ctx := self.contexts[row]
		job := self.rowJob[row]
		for _, column := range order {
			self.columns[column.ID][row] = self.resolveValue(column, ctx, job)
		}
	}
}

// materialized returns the run's finished columns keyed by id, in the
// table's declared column order.
func (self *tableRun) materialized() *util.OrderedMap[string, []string] {
	out := util.NewOrderedMap[string, []string]()
	for _, column := range self.table.Columns {
		values := self.columns[column.ID]
		if values == nil {
			values = make([]string, self.total)
		}
		out.Insert(column.ID, values)
	}
	return out
}

func (self *tableRun) nonAIColumns() []*ir.Column {
	out := []*ir.Column{}
	for _, column := range self.table.Columns {
		if ir.KindOf(column.Rule) != ir.RuleKindAI {
			out = append(out, column)
		}
	}
	return out
}

// evaluationOrder sorts the table's non-AI columns so intra-row references
// (date logic, same-table durations, modified/created name pairs) resolve
// before their dependents, using in-degree counters and a FIFO queue. Any
// unsortable remainder keeps its declared order.
func (self *tableRun) evaluationOrder() []*ir.Column {
	columns := self.nonAIColumns()
	byID := map[string]*ir.Column{}
	inDegree := map[string]int{}
	dependents := map[string][]string{}
	for _, column := range columns {
		byID[column.ID] = column
	}
	for _, column := range columns {
		for _, depID := range self.columnDependencies(column) {
			if byID[depID] == nil {
				continue
			}
			dependents[depID] = append(dependents[depID], column.ID)
			inDegree[column.ID]++
		}
	}

	queue := []string{}
	for _, column := range columns {
		if inDegree[column.ID] == 0 {
			queue = append(queue, column.ID)
		}
	}
	order := make([]*ir.Column, 0, len(columns))
	placed := map[string]bool{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, byID[id])
		placed[id] = true
		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}
	for _, column := range columns {
		if !placed[column.ID] {
			order = append(order, column)
		}
	}
	return order
}

// columnDependencies lists the same-table columns whose resolved value this
// column reads within a row. Dependencies on AI columns are dropped here;
// AI values do not exist until after the non-AI pass, and reads of them
// fall back per resolver.
func (self *tableRun) columnDependencies(column *ir.Column) []string {
	deps := []string{}
	add := func(id string) {
		if id == "" || id == column.ID {
			return
		}
		dep := self.table.TryGetColumnByID(id)
		if dep == nil || ir.KindOf(dep.Rule) == ir.RuleKindAI {
			return
		}
		if !util.Contains(deps, id) {
			deps = append(deps, id)
		}
	}

	explicitLogic := false
	switch rule := column.Rule.(type) {
	case ir.DateRule:
		if rule.Logic != nil {
			explicitLogic = true
			add(rule.Logic.ColumnID)
			add(rule.Logic.SecondColumnID)
		}
	case ir.DurationRule:
		if rule.StartTableID == "" || rule.StartTableID == self.table.ID {
			add(rule.StartColumnID)
		}
		if rule.EndTableID == "" || rule.EndTableID == self.table.ID {
			add(rule.EndColumnID)
		}
	}
	if !explicitLogic && column.Type.IsDate() && nameContainsAny(column.Name, modifiedHints) {
		if sibling := self.siblingNamedLike(createdHints); sibling != nil {
			add(sibling.ID)
		}
	}
	return deps
}

// resolveValue computes one cell. Date-typed columns always render a
// timestamp, whatever strategy they carry; everything else dispatches on
// the rule variant.
func (self *tableRun) resolveValue(column *ir.Column, ctx *RowContext, job Job) string {
	if column.Type.IsDate() {
		return self.resolveDate(column, ctx)
	}
	switch rule := column.Rule.(type) {
	case ir.PatternRule:
		return self.resolvePattern(rule, ctx)
	case ir.RandomRule:
		return self.resolveRandom(column, rule)
	case ir.ReferenceRule:
		return self.resolveReference(rule)
	case ir.LinkedRule:
		return self.resolveLinked(rule, ctx, job)
	case ir.DateRule:
		return self.resolveDate(column, ctx)
	case ir.DurationRule:
		return self.resolveDuration(rule, ctx, job)
	case ir.RevisionRule:
		return self.resolveRevision(column)
	default:
		return self.resolveCopy(column, ctx)
	}
}

func (self *tableRun) resolveCopy(column *ir.Column, ctx *RowContext) string {
	if len(column.SampleValues) == 0 {
		return ""
	}
	return column.SampleValues[ctx.RowIndex%len(column.SampleValues)]
}

func (self *tableRun) resolvePattern(rule ir.PatternRule, ctx *RowContext) string {
	pattern := rule.Pattern
	if util.IMatch(`^uuid$`, pattern) != nil {
		id, _ := uuid.NewRandomFromReader(self.rng)
		return id.String()
	}
	if m := util.IMatch(`^hex(?:-(\d*))?$`, pattern); m != nil {
		return self.randomHex(hexWidth(m[1]))
	}
	if !strings.Contains(pattern, "#") {
		return pattern + strconv.Itoa(ctx.RowIndex)
	}
	// each run of '#' renders the 1-based row index padded to the run width
	var out strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] != '#' {
			out.WriteByte(pattern[i])
			i++
			continue
		}
		width := 0
		for i < len(pattern) && pattern[i] == '#' {
			width++
			i++
		}
		fmt.Fprintf(&out, "%0*d", width, ctx.RowIndex+1)
	}
	return out.String()
}

func hexWidth(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 32
	}
	return n
}

const hexAlphabet = "0123456789ABCDEF"

func (self *tableRun) randomHex(width int) string {
	out := make([]byte, width)
	for i := range out {
		out[i] = hexAlphabet[self.rng.Intn(len(hexAlphabet))]
	}
	return string(out)
}

func (self *tableRun) resolveRandom(column *ir.Column, rule ir.RandomRule) string {
	options := rule.Options
	if len(options) == 0 {
		options = defaultRandomOptions
	}
	if !column.Type.Equals(ir.DataTypeMultiValue) {
		return options[self.rng.Intn(len(options))]
	}
	draws := 1 + self.rng.Intn(3)
	picked := []string{}
	for i := 0; i < draws; i++ {
		option := options[self.rng.Intn(len(options))]
		if !util.Contains(picked, option) {
			picked = append(picked, option)
		}
	}
	return strings.Join(picked, util.CoalesceStr(rule.Delimiter, ","))
}

func (self *tableRun) resolveReference(rule ir.ReferenceRule) string {
	file := self.project.TryGetReferenceFileByID(rule.FileID)
	if file == nil || len(file.Values) == 0 {
		return SentinelMissingRef
	}
	return file.Values[self.rng.Intn(len(file.Values))]
}

func (self *tableRun) resolveLinked(rule ir.LinkedRule, ctx *RowContext, job Job) string {
	if !rule.Configured() {
		return SentinelUnconfiguredLink
	}
	index, ok := self.resolvedParentIndex(rule.TableID, ctx, job)
	if !ok {
		if self.isDrivingParent(rule.TableID) {
			return SentinelOrphan
		}
		return SentinelMissingSourceVal
	}
	values := self.store.Column(rule.TableID, rule.ColumnID)
	if index >= len(values) {
		return SentinelMissingSourceVal
	}
	return values[index]
}

func (self *tableRun) resolveRevision(column *ir.Column) string {
	tokens := column.RevisionTokens()
	return tokens[self.rng.Intn(len(tokens))]
}

// resolvedParentIndex picks the parent row this output row reads from. The
// driving parent is row-aligned through the planner job; any other parent
// gets a uniformly random generated row, chosen once per output row and
// memoized on the context. ok is false when no parent row can be bound.
func (self *tableRun) resolvedParentIndex(parentTableID string, ctx *RowContext, job Job) (int, bool) {
	if index, ok := ctx.ResolvedParentIndices[parentTableID]; ok {
		return index, index >= 0
	}
	if self.isDrivingParent(parentTableID) {
		ctx.ResolvedParentIndices[parentTableID] = job.ParentRowIndex
		return job.ParentRowIndex, job.ParentRowIndex >= 0
	}
	count := self.store.RowCount(parentTableID)
	if count == 0 {
		return -1, false
	}
	index := self.rng.Intn(count)
	ctx.ResolvedParentIndices[parentTableID] = index
	return index, true
}

func (self *tableRun) isDrivingParent(parentTableID string) bool {
	settings := self.table.Generation
	return settings.Mode.Equals(ir.GenerationModePerParent) &&
		settings.DrivingParentTableID == parentTableID
}

// resolvedValueAt reads a cell of this table resolved earlier in the pass.
// Cells not yet written read as empty, which downstream parsing treats as
// missing.
func (self *tableRun) resolvedValueAt(columnID string, rowIndex int) (string, bool) {
	values := self.columns[columnID]
	if rowIndex < 0 || rowIndex >= len(values) {
		return "", false
	}
	return values[rowIndex], true
}

func (self *tableRun) siblingNamedLike(hints []string) *ir.Column {
	for _, column := range self.table.Columns {
		if nameContainsAny(column.Name, hints) {
			return column
		}
	}
	return nil
}

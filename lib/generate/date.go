package generate

import (
	"strconv"
	"strings"
	"time"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

// Window for the fallback draw when no date configuration or sibling
// applies.
const recentWindowDays = 5 * 365

var (
	modifiedHints = []string{"modified", "updated"}
	createdHints  = []string{"created", "originated"}
)

func nameContainsAny(name string, hints []string) bool {
	for _, hint := range hints {
		if util.IIndex(name, hint) >= 0 {
			return true
		}
	}
	return false
}

// Accepted input layouts; sample data commonly arrives without a zone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// resolveDate renders a timestamp for a date-typed column. Explicit date
// logic wins; otherwise a modified/updated column is drawn at or after its
// created/originated sibling; otherwise the value is a uniform draw within
// the recent window.
func (self *tableRun) resolveDate(column *ir.Column, ctx *RowContext) string {
	if rule, ok := column.Rule.(ir.DateRule); ok && rule.Logic != nil {
		return self.resolveDateLogic(rule.Logic, ctx)
	}
	if t, ok := self.modifiedAfterCreated(column, ctx); ok {
		return formatTimestamp(t)
	}
	return formatTimestamp(self.randomRecentInstant())
}

func (self *tableRun) resolveDateLogic(logic *ir.DateLogic, ctx *RowContext) string {
	if logic.Mode.Equals(ir.DateLogicModeBetween) {
		first, okFirst := self.referencedInstant(logic.ColumnID, ctx)
		second, okSecond := self.referencedInstant(logic.SecondColumnID, ctx)
		if !okFirst || !okSecond {
			return formatTimestamp(self.randomRecentInstant())
		}
		if second.Before(first) {
			first, second = second, first
		}
		return formatTimestamp(self.instantBetween(first, second))
	}
	base := self.now
	if logic.Mode.Equals(ir.DateLogicModeColumn) {
		ref, ok := self.referencedInstant(logic.ColumnID, ctx)
		if !ok {
			return formatTimestamp(self.randomRecentInstant())
		}
		base = ref
	}
	days := self.offsetDays(logic)
	if logic.Operator.Subtracts() {
		days = -days
	}
	return formatTimestamp(base.AddDate(0, 0, days))
}

// offsetDays draws a uniform day count in [MinOffsetDays, MaxOffsetDays].
// Exclusive operators must not land on the base instant, so their draw
// floors at one day.
func (self *tableRun) offsetDays(logic *ir.DateLogic) int {
	min, max := logic.MinOffsetDays, logic.MaxOffsetDays
	if max < min {
		min, max = max, min
	}
	if logic.Operator.Exclusive() && min < 1 {
		min = 1
		if max < min {
			max = min
		}
	}
	return min + self.rng.Intn(max-min+1)
}

// referencedInstant parses the already-resolved value of a same-table
// column for this row.
func (self *tableRun) referencedInstant(columnID string, ctx *RowContext) (time.Time, bool) {
	if columnID == "" {
		return time.Time{}, false
	}
	value, ok := self.resolvedValueAt(columnID, ctx.RowIndex)
	if !ok {
		return time.Time{}, false
	}
	return parseTimestamp(value)
}

// modifiedAfterCreated draws a value at or after the created/originated
// sibling of a modified/updated column, keeping per-row time order.
func (self *tableRun) modifiedAfterCreated(column *ir.Column, ctx *RowContext) (time.Time, bool) {
	if !nameContainsAny(column.Name, modifiedHints) {
		return time.Time{}, false
	}
	sibling := self.siblingNamedLike(createdHints)
	if sibling == nil || sibling.ID == column.ID {
		return time.Time{}, false
	}
	value, ok := self.resolvedValueAt(sibling.ID, ctx.RowIndex)
	if !ok {
		return time.Time{}, false
	}
	created, ok := parseTimestamp(value)
	if !ok {
		return time.Time{}, false
	}
	if created.After(self.now) {
		return created, true
	}
	return self.instantBetween(created, self.now), true
}

func (self *tableRun) randomRecentInstant() time.Time {
	span := time.Duration(recentWindowDays) * 24 * time.Hour
	return self.now.Add(-time.Duration(self.rng.Float64() * float64(span)))
}

func (self *tableRun) instantBetween(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(self.rng.Float64() * float64(span)))
}

// resolveDuration emits (end - start) in the rule's unit as a decimal
// integer. Start and end may live in this table or in a parent bound
// through the row's resolved parent indices; anything missing, unparseable,
// or inverted clamps to zero.
func (self *tableRun) resolveDuration(rule ir.DurationRule, ctx *RowContext, job Job) string {
	start, okStart := self.boundInstant(rule.StartTableID, rule.StartColumnID, ctx, job)
	end, okEnd := self.boundInstant(rule.EndTableID, rule.EndColumnID, ctx, job)
	if !okStart || !okEnd {
		return "0"
	}
	elapsed := util.Max(end.Sub(start), 0)
	if rule.Unit.Equals(ir.DurationUnitHours) {
		return strconv.Itoa(int(elapsed.Hours()))
	}
	return strconv.Itoa(int(elapsed.Hours() / 24))
}

// boundInstant reads a timestamp either from this table's current row or
// from the parent row this output row is bound to.
func (self *tableRun) boundInstant(tableID, columnID string, ctx *RowContext, job Job) (time.Time, bool) {
	if columnID == "" {
		return time.Time{}, false
	}
	if tableID == "" || tableID == self.table.ID {
		return self.referencedInstant(columnID, ctx)
	}
	index, ok := self.resolvedParentIndex(tableID, ctx, job)
	if !ok {
		return time.Time{}, false
	}
	values := self.store.Column(tableID, columnID)
	if index >= len(values) {
		return time.Time{}, false
	}
	return parseTimestamp(values[index])
}

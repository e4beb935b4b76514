package generate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

// Example values passed along with an AI prompt are capped so a large
// sample upload does not balloon every request.
const maxExampleValues = 5

// resolveAI fills the table's AI columns, one batched request per column.
// Columns run level by level through their dependency forest; columns
// inside a level have no path between each other and are requested
// concurrently, each writing its own result slot.
func (self *tableRun) resolveAI(ctx context.Context) error {
	ordered, err := self.table.AIDependencyOrder()
	if err != nil {
		return err
	}
	if len(ordered) == 0 {
		return nil
	}
	for _, level := range aiLevels(ordered, self.table) {
		results := make([][]string, len(level))
		var wg sync.WaitGroup
		for i, column := range level {
			self.eng.reportProgress(fmt.Sprintf("generating content for %s.%s", self.table.Name, column.Name))
			wg.Add(1)
			go func(i int, column *ir.Column) {
				defer wg.Done()
				results[i] = self.eng.generateColumn(ctx, self.table, column, self.aiRequest(column))
			}(i, column)
		}
		wg.Wait()
		for i, column := range level {
			self.columns[column.ID] = results[i]
		}
	}
	return nil
}

// aiLevels partitions AI columns into dependency levels: level 0 declares
// no AI dependencies, and every column sits one level below the deepest AI
// column it depends on. ordered must already be dependency-ordered.
func aiLevels(ordered []*ir.Column, table *ir.Table) [][]*ir.Column {
	levels := [][]*ir.Column{}
	levelOf := map[string]int{}
	for _, column := range ordered {
		level := 0
		rule, _ := column.Rule.(ir.AIRule)
		for _, depID := range rule.DependsOn {
			dep := table.TryGetColumnByID(depID)
			if dep == nil || ir.KindOf(dep.Rule) != ir.RuleKindAI {
				continue
			}
			if depLevel, ok := levelOf[dep.ID]; ok && depLevel+1 > level {
				level = depLevel + 1
			}
		}
		levelOf[column.ID] = level
		for len(levels) <= level {
			levels = append(levels, []*ir.Column{})
		}
		levels[level] = append(levels[level], column)
	}
	return levels
}

// aiRequest assembles the batched request for one AI column: its prompt,
// the full row count, capped example values, and one context string per
// row naming each dependency value as "<column name>: <value>".
func (self *tableRun) aiRequest(column *ir.Column) BatchRequest {
	rule, _ := column.Rule.(ir.AIRule)
	contexts := make([]string, self.total)
	for row := 0; row < self.total; row++ {
		parts := []string{}
		for _, depID := range rule.DependsOn {
			dep := self.table.TryGetColumnByID(depID)
			if dep == nil {
				continue
			}
			if value, ok := self.resolvedValueAt(dep.ID, row); ok {
				parts = append(parts, dep.Name+": "+value)
			}
		}
		contexts[row] = strings.Join(parts, ", ")
	}
	examples := column.SampleValues[:util.Min(len(column.SampleValues), maxExampleValues)]
	return BatchRequest{
		Prompt:      rule.Prompt,
		Count:       self.total,
		Examples:    examples,
		RowContexts: contexts,
	}
}

// cyclicFill pads returned values to length count by repeating them in
// order; an empty return fills every slot with the failure sentinel.
func cyclicFill(returned []string, count int) []string {
	out := make([]string, count)
	if len(returned) == 0 {
		for i := range out {
			out[i] = SentinelGenerationFailed
		}
		return out
	}
	for i := range out {
		out[i] = returned[i%len(returned)]
	}
	return out
}

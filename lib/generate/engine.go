package generate

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/output"
	"github.com/rowforge/rowforge/lib/util"
)

// ProgressFunc receives coarse run milestones: planning, each table start,
// each AI column start, archive assembly, and completion or error. A nil
// sink is silent.
type ProgressFunc func(message string)

// Engine drives a full generation run: table ordering, row planning, value
// resolution, AI batching, and serialization into an archive. The injected
// random source is the run's only source of randomness, so a fixed seed
// reproduces a run exactly.
type Engine struct {
	logger   zerolog.Logger
	rand     *rand.Rand
	content  ContentService
	progress ProgressFunc
	now      func() time.Time
}

func NewEngine(logger zerolog.Logger, rng *rand.Rand, content ContentService, progress ProgressFunc) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		logger:   logger,
		rand:     rng,
		content:  content,
		progress: progress,
		now:      time.Now,
	}
}

// Generate materializes every table of the project in dependency order and
// hands the serialized tables to the writer. It returns the finalized
// archive, or an error with no archive; on any fatal error the progress
// sink receives a single terminal "error occurred" message and nothing
// partial is produced.
func (self *Engine) Generate(ctx context.Context, project *ir.Project, writer output.ArchiveWriter) (*output.Archive, error) {
	archive, err := self.run(ctx, project, writer)
	if err != nil {
		self.reportProgress("error occurred")
		return nil, err
	}
	self.reportProgress("generation complete")
	return archive, nil
}

func (self *Engine) run(ctx context.Context, project *ir.Project, writer output.ArchiveWriter) (*output.Archive, error) {
	if errs := project.Validate(); len(errs) > 0 {
		return nil, errors.Wrap(&multierror.Error{Errors: errs}, "project failed validation")
	}
	self.reportProgress("planning generation order")
	order, unresolved := project.GenerationOrder()
	if len(unresolved) > 0 {
		names := util.Map(unresolved, func(t *ir.Table) string { return t.Name })
		self.logger.Warn().Msgf("Relationship cycle: tables %s generate without guaranteed referential integrity", strings.Join(names, ", "))
	}

	store := NewStore()
	now := self.now()
	for _, table := range order {
		self.reportProgress(fmt.Sprintf("generating table %s", table.Name))
		run := newTableRun(self, project, table, store, now)
		run.resolveNonAI()
		if err := run.resolveAI(ctx); err != nil {
			return nil, errors.Wrapf(err, "generating table %s", table.Name)
		}
		if err := store.PutTable(table.ID, run.materialized()); err != nil {
			return nil, err
		}
	}

	self.reportProgress("assembling archive")
	for _, table := range order {
		if err := writer.WriteFile(table.Name+".csv", RenderTableCSV(table, store)); err != nil {
			return nil, errors.Wrapf(err, "writing %s.csv", table.Name)
		}
	}
	archive, err := writer.Finalize()
	if err != nil {
		return nil, errors.Wrap(err, "finalizing archive")
	}
	return archive, nil
}

func (self *Engine) reportProgress(message string) {
	if self.progress != nil {
		self.progress(message)
	}
}

// generateColumn issues the batched request for one AI column. A missing
// service, an error return, or an empty payload degrades to sentinel fill;
// under-delivery is padded cyclically. The table is never aborted.
func (self *Engine) generateColumn(ctx context.Context, table *ir.Table, column *ir.Column, req BatchRequest) []string {
	if req.Count == 0 {
		return []string{}
	}
	if self.content == nil {
		self.logger.Warn().Msgf("No content service configured, filling %s.%s with %s", table.Name, column.Name, SentinelGenerationFailed)
		return cyclicFill(nil, req.Count)
	}
	returned, err := self.content.GenerateBatch(ctx, req)
	if err != nil {
		self.logger.Warn().Err(err).Msgf("Content generation failed for %s.%s, filling with %s", table.Name, column.Name, SentinelGenerationFailed)
		return cyclicFill(nil, req.Count)
	}
	if len(returned) == 0 {
		self.logger.Warn().Msgf("Content service returned no values for %s.%s, filling with %s", table.Name, column.Name, SentinelGenerationFailed)
	}
	return cyclicFill(returned, req.Count)
}

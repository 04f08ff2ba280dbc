// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cirscan/cirscan/internal/evidence"
	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/validator"
)

// RequirementExtractor turns requirements text into an analysis.
// *requirement.Extractor satisfies it.
type RequirementExtractor interface {
	Extract(text, source string) *requirement.Analysis
}

// Pipeline wires the extraction, matching and validation stages.
// It is safe for concurrent use.
type Pipeline struct {
	requirements RequirementExtractor
	metadata     *metadata.Extractor
	matcher      *evidence.Matcher
	builder      *validator.Builder
	validator    *validator.Validator
	workers      int
	log          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds how many evidence documents AnalyzeBatch processes at
// once. Values below 1 mean sequential processing.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRequirementExtractor replaces the default requirement extractor.
func WithRequirementExtractor(e RequirementExtractor) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.requirements = e
		}
	}
}

// New creates a Pipeline over table.
func New(table *rules.Table, opts ...Option) *Pipeline {
	p := &Pipeline{
		requirements: requirement.NewExtractor(table),
		metadata:     metadata.NewExtractor(table),
		matcher:      evidence.NewMatcher(table),
		builder:      validator.NewBuilder(table),
		workers:      1,
		log:          logging.New("analysis"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.validator = validator.New(table, validator.WithLogger(p.log))
	return p
}

// ExtractRequirements runs requirement extraction alone.
func (p *Pipeline) ExtractRequirements(in RequirementsInput) (*requirement.Analysis, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("requirements %q: %w", in.Source, ErrEmptyRequirements)
	}
	a := p.requirements.Extract(in.Text, in.Source)
	p.log.Debug("requirements extracted",
		slog.String("source", in.Source),
		slog.String("case_id", a.CaseID),
		slog.Int("requirements", len(a.Requirements)),
	)
	return a, nil
}

// AnalyzePair analyzes one evidence document against one requirements
// document. Any failure is returned to the caller.
func (p *Pipeline) AnalyzePair(ctx context.Context, req RequirementsInput, ev EvidenceInput) (*Result, error) {
	a, err := p.ExtractRequirements(req)
	if err != nil {
		return nil, err
	}
	res, err := p.analyze(ctx, a, ev)
	if err != nil {
		return nil, fmt.Errorf("evidence %q failed at stage %s: %w", res.ID, res.Stage, err)
	}
	return res, nil
}

// AnalyzeBatch extracts requirements once and analyzes every evidence
// document against them. A failing document is recorded with status error
// and does not stop the batch. Only blank requirements text or context
// cancellation fail the whole call.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, req RequirementsInput, docs []EvidenceInput) (*BatchResult, error) {
	a, err := p.ExtractRequirements(req)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = p.isolated(gCtx, a, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch canceled: %w", err)
	}

	stats := Statistics(results)
	p.log.Info("batch complete",
		slog.String("case_id", a.CaseID),
		slog.Int("documents", stats.Total),
		slog.Int("failed", stats.Failed),
		slog.Int("go", stats.Go),
	)
	return &BatchResult{Requirements: a, Documents: results, Statistics: stats}, nil
}

// isolated runs analyze and converts an error into an error result.
func (p *Pipeline) isolated(ctx context.Context, a *requirement.Analysis, ev EvidenceInput) Result {
	res, err := p.analyze(ctx, a, ev)
	if err != nil {
		p.log.Warn("evidence document failed",
			slog.String("id", res.ID),
			slog.String("stage", string(res.Stage)),
			slog.String("error", err.Error()),
		)
		return Result{
			ID:                 res.ID,
			Name:               res.Name,
			Status:             StatusError,
			Error:              err.Error(),
			Stage:              res.Stage,
			CaseID:             res.CaseID,
			RequirementMatches: []evidence.Evidence{},
		}
	}
	return *res
}

// analyze walks one document through the stages. The returned result is
// never nil, so callers can report the stage reached on error. Panics are
// recovered into errors.
func (p *Pipeline) analyze(ctx context.Context, a *requirement.Analysis, ev EvidenceInput) (res *Result, err error) {
	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	res = &Result{ID: id, Name: ev.Name, Status: StatusOK, Stage: StageRequirementsExtracted, CaseID: a.CaseID}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if strings.TrimSpace(ev.Text) == "" {
		return res, ErrEmptyEvidence
	}

	meta := p.metadata.ExtractWithSeed(ev.Text, ev.MetadataSeed)
	res.Metadata = meta
	res.Stage = StageEvidenceExtracted

	res.RequirementMatches, res.MatchSummary = p.matcher.Assess(ev.Text, meta, a.Requirements, a)
	res.Stage = StageMatched

	doc := p.builder.Build(ev.Text, ev.Pages, meta, ev.ExtractionConfidence, ev.ExtractionErrors)
	verdict := p.validator.Validate(doc)
	res.Document = doc
	res.StructuralVerdict = &verdict
	res.Stage = StageScored

	res.Decision = Decide(res.MatchSummary, verdict)
	res.Stage = StageDone

	p.log.Info("evidence analyzed",
		slog.String("id", id),
		slog.String("match", res.MatchSummary.GoNoGo),
		slog.Float64("compliance_score", res.MatchSummary.ComplianceScore),
		slog.String("structural", string(verdict.Status)),
		slog.String("decision", res.Decision),
	)
	return res, nil
}

// Package pipeline orchestrates one analysis run: schema reconciliation,
// normalization and stage derivation, KPI aggregation, and the narrative
// hand-off.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/automind/leadscope/internal/config"
	"github.com/automind/leadscope/internal/funnel"
	"github.com/automind/leadscope/internal/insight"
	"github.com/automind/leadscope/internal/match"
	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/schema"
)

// Pipeline runs the normalization + KPI derivation over one table at a
// time. It holds no per-run state, so one Pipeline serves concurrent
// requests; each Run works on its own snapshot of the input.
type Pipeline struct {
	cfg       *config.Config
	matcher   *match.Matcher
	generator insight.Generator
}

// New creates a Pipeline with its dependencies.
func New(cfg *config.Config, generator insight.Generator) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		matcher:   match.New(cfg.Funnel.StatusVocabulary, cfg.Funnel.FuzzyThreshold),
		generator: generator,
	}
}

// Run executes the full analysis for one input table. The input is never
// mutated. The returned result always carries complete KPIs and the
// cleaned dataset; a failing or absent insight backend only changes the
// Insights text.
func (p *Pipeline) Run(ctx context.Context, input *model.Table) (*model.AnalysisResult, error) {
	if input == nil {
		return nil, eris.New("pipeline: nil input table")
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting analysis",
		zap.Int("rows", input.Len()),
		zap.Int("columns", len(input.Columns)),
	)

	// Phase 1: schema reconciliation + normalization.
	table := schema.Reconcile(input)
	schema.Normalize(table, p.matcher)
	funnel.DeriveStages(table)

	// Phase 2: KPI aggregation.
	kpis := funnel.ComputeKPIs(table, p.cfg.Funnel.SourceTotals)

	// Phase 3: export shape. Stage derivation already ran, so collapsing
	// unparseable dates to empty strings here loses nothing it needs.
	funnel.CanonicalizeDates(table)

	// Phase 4: narrative hand-off, degraded to a message on failure.
	insights := p.generateInsights(ctx, log, kpis, table)

	log.Info("pipeline: analysis complete", zap.Int("rows", table.Len()))

	return &model.AnalysisResult{
		RunID:    runID,
		KPIs:     kpis,
		Insights: insights,
		Data:     table.Records(),
	}, nil
}

func (p *Pipeline) generateInsights(ctx context.Context, log *zap.Logger, kpis *model.KPIResult, table *model.Table) string {
	sample, err := sampleCSV(table.Head(insight.SampleRows))
	if err != nil {
		log.Warn("pipeline: sample serialization failed", zap.Error(err))
		sample = ""
	}

	text, err := p.generator.Generate(ctx, kpis, sample)
	if err != nil {
		// KPIs are already computed; a generation fault becomes part of
		// the result, never an abort.
		log.Warn("pipeline: insight generation failed", zap.Error(err))
		return "Erro ao gerar insights: " + err.Error()
	}
	return text
}

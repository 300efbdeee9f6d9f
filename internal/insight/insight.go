// Package insight turns a computed KPI tree into a narrative analysis via
// the Anthropic API. It is a collaborator of the pipeline, not part of the
// KPI computation: whatever happens here, the KPIs already stand.
package insight

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/pkg/anthropic"
)

// UnavailableMessage is returned in place of insights when no API key is
// configured. It is a normal result, not an error: KPI output is complete
// without a narrative.
const UnavailableMessage = "LLM não configurada. Configure LEADSCOPE_ANTHROPIC_KEY para gerar insights."

// Generator produces a narrative analysis from the KPI tree and a sample
// of the cleaned records (as CSV text).
type Generator interface {
	Generate(ctx context.Context, kpis *model.KPIResult, sampleCSV string) (string, error)
}

// Options configures the Claude-backed generator.
type Options struct {
	Model     string
	MaxTokens int64
}

// New returns a Generator for the given client. A nil client yields the
// unavailable-backend generator, which always answers with
// UnavailableMessage.
func New(client anthropic.Client, opts Options) Generator {
	if client == nil {
		return unavailableGenerator{}
	}
	return &claudeGenerator{client: client, opts: opts}
}

// unavailableGenerator is the named absent-backend state. Keeping it as a
// distinct type (instead of a magic empty key checked at call sites) makes
// "no backend" an explicit configuration outcome.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, *model.KPIResult, string) (string, error) {
	return UnavailableMessage, nil
}

// claudeGenerator calls the Anthropic API with the analyst prompt.
type claudeGenerator struct {
	client anthropic.Client
	opts   Options
}

func (g *claudeGenerator) Generate(ctx context.Context, kpis *model.KPIResult, sampleCSV string) (string, error) {
	metricsJSON, err := json.MarshalIndent(kpis, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "insight: marshal kpis")
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.opts.Model,
		MaxTokens: g.opts.MaxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(string(metricsJSON), sampleCSV)},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "insight: generate")
	}

	resp.Usage.LogCost(g.opts.Model, "insight")
	zap.L().Info("insight: narrative generated",
		zap.String("model", resp.Model),
		zap.String("stop_reason", resp.StopReason),
	)

	return resp.Text(), nil
}

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/automind/leadscope/internal/fetcher"
	"github.com/automind/leadscope/internal/insight"
	"github.com/automind/leadscope/internal/pipeline"
	"github.com/automind/leadscope/pkg/anthropic"
)

var (
	analyzeFile      string
	analyzeSheet     string
	analyzeOutputDir string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a lead export file and write KPIs + insights",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		table, err := fetcher.ReadFile(analyzeFile, fetcher.Options{SheetName: analyzeSheet})
		if err != nil {
			return eris.Wrap(err, "analyze: read input")
		}
		zap.L().Info("file loaded",
			zap.String("file", analyzeFile),
			zap.Int("rows", table.Len()),
		)

		p := pipeline.New(cfg, newGenerator(cfg.Anthropic.Key))
		result, err := p.Run(ctx, table)
		if err != nil {
			return eris.Wrap(err, "analyze: run pipeline")
		}

		if err := os.MkdirAll(analyzeOutputDir, 0o755); err != nil {
			return eris.Wrap(err, "analyze: create output dir")
		}

		stamp := time.Now().Format("20060102_150405")

		kpisPath := filepath.Join(analyzeOutputDir, "kpis_"+stamp+".json")
		kpisJSON, err := json.MarshalIndent(result.KPIs, "", "    ")
		if err != nil {
			return eris.Wrap(err, "analyze: marshal kpis")
		}
		if err := os.WriteFile(kpisPath, kpisJSON, 0o644); err != nil {
			return eris.Wrap(err, "analyze: write kpis")
		}

		insightsPath := filepath.Join(analyzeOutputDir, "insights_"+stamp+".txt")
		if err := os.WriteFile(insightsPath, []byte(result.Insights), 0o644); err != nil {
			return eris.Wrap(err, "analyze: write insights")
		}

		zap.L().Info("analysis written",
			zap.String("run_id", result.RunID),
			zap.String("kpis", kpisPath),
			zap.String("insights", insightsPath),
		)
		return nil
	},
}

// newGenerator builds the insight generator for the given API key. An
// empty key selects the unavailable-backend generator.
func newGenerator(key string) insight.Generator {
	var client anthropic.Client
	if key != "" {
		client = anthropic.NewClient(key)
	}
	return insight.New(client, insight.Options{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
	})
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "path to .xlsx or .csv lead export (required)")
	analyzeCmd.Flags().StringVar(&analyzeSheet, "sheet", "", "worksheet name (xlsx only, default first sheet)")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output-dir", "./out", "directory for generated files")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/adapters"
	"github.com/spacesedan/commentlens/internal/analytics"
	"github.com/spacesedan/commentlens/internal/export"
	"github.com/spacesedan/commentlens/internal/pipeline"
	"github.com/spacesedan/commentlens/internal/sentiment"
)

// runAnalysis is the session shared by every analyze command: adapt the
// source, classify, summarize, render, and optionally export.
func runAnalysis(ctx context.Context, cfg config.Config, adapter adapters.SourceAdapter, exportPath string) error {
	records, report, err := adapter.Adapt(ctx)
	if err != nil {
		return err
	}

	clf, err := sentiment.FromConfig(cfg)
	if err != nil {
		return err
	}

	batch := pipeline.Run(ctx, records, clf, pipeline.Options{
		Workers:          cfg.Workers,
		FailureWarnRatio: cfg.FailureWarnRatio,
	})

	view := analytics.Summarize(batch)
	renderSummary(os.Stdout, view, batch, report)

	if exportPath != "" {
		if err := export.WriteFile(exportPath, batch); err != nil {
			return err
		}
	}

	if batch.Warning != "" {
		slog.Warn("[Analysis] Batch completed with warning",
			slog.String("warning", batch.Warning))
	}
	return nil
}

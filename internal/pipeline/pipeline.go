// Package pipeline drives normalized records through the classifier,
// isolating per-item failures so one bad item never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/sentiment"
)

type Options struct {
	// Workers bounds the classification pool. Values <= 1 run the batch
	// sequentially; either way output order matches input order.
	Workers int

	// FailureWarnRatio sets the failure rate at or above which the batch
	// gets a batch-level warning. Zero means the default: warn only when
	// every item failed. A negative value warns whenever any item fails.
	FailureWarnRatio float64
}

// Run classifies every record and returns exactly one result per input,
// in input order. Classifier failures are recorded inline.
func Run(ctx context.Context, records []models.CommentRecord, clf sentiment.Classifier, opts Options) models.AnalysisBatch {
	batch := models.AnalysisBatch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Results:   make([]models.AnalysisResult, len(records)),
	}

	start := time.Now()

	if opts.Workers > 1 && len(records) > 1 {
		runParallel(ctx, records, clf, opts.Workers, batch.Results)
	} else {
		for i, record := range records {
			batch.Results[i] = classifyOne(ctx, clf, record)
		}
	}

	failures := batch.FailureCount()
	slog.Info("[Pipeline] Batch finished",
		slog.String("batch_id", batch.ID),
		slog.Int("records", len(records)),
		slog.Int("failures", failures),
		slog.Duration("elapsed", time.Since(start)))

	warnRatio := opts.FailureWarnRatio
	switch {
	case warnRatio == 0:
		warnRatio = 1.0
	case warnRatio < 0:
		warnRatio = 0
	}
	if failures > 0 && batch.FailureRate() >= warnRatio {
		batch.Warning = fmt.Sprintf("%d of %d items failed to classify", failures, len(records))
		slog.Warn("[Pipeline] Batch mostly failed",
			slog.String("batch_id", batch.ID),
			slog.String("warning", batch.Warning))
	}

	return batch
}

func runParallel(ctx context.Context, records []models.CommentRecord, clf sentiment.Classifier, workers int, results []models.AnalysisResult) {
	if workers > len(records) {
		workers = len(records)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = classifyOne(ctx, clf, records[i])
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// classifyOne converts any failure mode, including a worker panic, into
// a per-item error result.
func classifyOne(ctx context.Context, clf sentiment.Classifier, record models.CommentRecord) (result models.AnalysisResult) {
	result.Record = record

	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Pipeline] Recovered classifier panic",
				slog.Any("panic", r))
			result.Label = ""
			result.Confidence = 0
			result.Err = fmt.Sprintf("classifier panic: %v", r)
		}
	}()

	label, confidence, err := clf.Classify(ctx, record.Text)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.Label = label
	result.Confidence = confidence
	return result
}

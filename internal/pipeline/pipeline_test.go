package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentlens/internal/models"
)

type stubClassifier struct {
	classify func(text string) (models.SentimentLabel, float64, error)
}

func (s stubClassifier) Classify(_ context.Context, text string) (models.SentimentLabel, float64, error) {
	return s.classify(text)
}

func alwaysPositive(text string) (models.SentimentLabel, float64, error) {
	return models.LabelPositive, 0.9, nil
}

func alwaysFailing(text string) (models.SentimentLabel, float64, error) {
	return "", 0, fmt.Errorf("%w: backend down", models.ErrClassifierUnavailable)
}

func makeRecords(n int) []models.CommentRecord {
	records := make([]models.CommentRecord, n)
	for i := range records {
		records[i] = models.CommentRecord{
			Text:     strconv.Itoa(i),
			Platform: models.PlatformCSV,
		}
	}
	return records
}

func TestRunYieldsOneResultPerRecord(t *testing.T) {
	records := makeRecords(5)
	batch := Run(context.Background(), records, stubClassifier{alwaysPositive}, Options{})

	require.Equal(t, len(records), batch.Len())
	assert.NotEmpty(t, batch.ID)
	assert.Zero(t, batch.FailureCount())
	assert.Empty(t, batch.Warning)
}

func TestRunAllFailuresStillReturnsFullBatch(t *testing.T) {
	records := makeRecords(3)
	batch := Run(context.Background(), records, stubClassifier{alwaysFailing}, Options{})

	require.Equal(t, 3, batch.Len())
	for _, result := range batch.Results {
		assert.True(t, result.Failed())
		assert.Empty(t, result.Label)
		assert.Zero(t, result.Confidence)
	}
	assert.NotEmpty(t, batch.Warning, "an all-error batch carries a batch-level warning")
}

func TestRunPartialFailureBelowThresholdHasNoWarning(t *testing.T) {
	records := makeRecords(4)
	clf := stubClassifier{func(text string) (models.SentimentLabel, float64, error) {
		if text == "0" {
			return "", 0, models.ErrClassifierUnavailable
		}
		return models.LabelNeutral, 0.5, nil
	}}

	batch := Run(context.Background(), records, clf, Options{})

	require.Equal(t, 4, batch.Len())
	assert.Equal(t, 1, batch.FailureCount())
	assert.Empty(t, batch.Warning)
}

func TestRunCustomWarnRatio(t *testing.T) {
	records := makeRecords(4)
	clf := stubClassifier{func(text string) (models.SentimentLabel, float64, error) {
		if text == "0" || text == "1" {
			return "", 0, models.ErrClassifierUnavailable
		}
		return models.LabelNeutral, 0.5, nil
	}}

	batch := Run(context.Background(), records, clf, Options{FailureWarnRatio: 0.5})
	assert.NotEmpty(t, batch.Warning)
}

func TestRunNegativeWarnRatioWarnsOnAnyFailure(t *testing.T) {
	records := makeRecords(4)
	clf := stubClassifier{func(text string) (models.SentimentLabel, float64, error) {
		if text == "0" {
			return "", 0, models.ErrClassifierUnavailable
		}
		return models.LabelNeutral, 0.5, nil
	}}

	batch := Run(context.Background(), records, clf, Options{FailureWarnRatio: -1})
	assert.NotEmpty(t, batch.Warning)
}

func TestRunNegativeWarnRatioStaysQuietWithoutFailures(t *testing.T) {
	batch := Run(context.Background(), makeRecords(4), stubClassifier{alwaysPositive}, Options{FailureWarnRatio: -1})
	assert.Empty(t, batch.Warning)
}

func TestRunParallelPreservesInputOrder(t *testing.T) {
	records := makeRecords(100)
	clf := stubClassifier{func(text string) (models.SentimentLabel, float64, error) {
		n, _ := strconv.Atoi(text)
		return models.LabelPositive, float64(n) / 100, nil
	}}

	batch := Run(context.Background(), records, clf, Options{Workers: 8})

	require.Equal(t, 100, batch.Len())
	for i, result := range batch.Results {
		assert.Equal(t, strconv.Itoa(i), result.Record.Text)
		assert.InDelta(t, float64(i)/100, result.Confidence, 1e-9)
	}
}

func TestRunRecoversClassifierPanic(t *testing.T) {
	records := makeRecords(3)
	clf := stubClassifier{func(text string) (models.SentimentLabel, float64, error) {
		if text == "1" {
			panic("boom")
		}
		return models.LabelNegative, 0.7, nil
	}}

	batch := Run(context.Background(), records, clf, Options{Workers: 2})

	require.Equal(t, 3, batch.Len())
	assert.False(t, batch.Results[0].Failed())
	assert.True(t, batch.Results[1].Failed())
	assert.Contains(t, batch.Results[1].Err, "panic")
	assert.False(t, batch.Results[2].Failed())
}

func TestRunEmptyInput(t *testing.T) {
	batch := Run(context.Background(), nil, stubClassifier{alwaysPositive}, Options{})
	assert.Zero(t, batch.Len())
	assert.Empty(t, batch.Warning)
}

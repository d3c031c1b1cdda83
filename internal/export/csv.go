// Package export writes an analysis batch to CSV. The output re-imports
// through the CSV adapter (its text column named "text"), so exported
// batches round-trip.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

// Header is the fixed export column order, one row per AnalysisResult.
var Header = []string{"text", "source_platform", "timestamp", "label", "confidence", "error"}

// Write streams the batch as CSV. Errored rows carry empty label and
// confidence cells so failures stay visible in the export.
func Write(w io.Writer, batch models.AnalysisBatch) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, result := range batch.Results {
		row := []string{
			result.Record.Text,
			string(result.Record.Platform),
			formatTimestamp(result.Record.Timestamp),
			string(result.Label),
			formatConfidence(result),
			result.Err,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile exports to a file on disk, reporting failures as ExportError
// and leaving the in-memory batch untouched.
func WriteFile(path string, batch models.AnalysisBatch) error {
	f, err := os.Create(path)
	if err != nil {
		return &models.ExportError{Path: path, Err: err}
	}

	if err := Write(f, batch); err != nil {
		f.Close()
		return &models.ExportError{Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &models.ExportError{Path: path, Err: err}
	}

	slog.Info("[Export] Batch exported",
		slog.String("path", path),
		slog.Int("rows", batch.Len()))
	return nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatConfidence(result models.AnalysisResult) string {
	if result.Failed() {
		return ""
	}
	return strconv.FormatFloat(result.Confidence, 'f', 4, 64)
}

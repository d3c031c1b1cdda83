package adapters

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

// COMMENT_TEXT_COLUMN is the mandatory text column of an uploaded CSV.
// The match is exact and case-sensitive.
const COMMENT_TEXT_COLUMN = "comment_text"

// Optional columns mapped opportunistically when present.
const (
	timestampColumn = "timestamp"
	authorColumn    = "author"
	platformColumn  = "platform"

	// Header written by the exporter; accepted on re-import so exported
	// batches round-trip through this adapter.
	exportPlatformColumn = "source_platform"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
}

// CSVAdapter turns tabular input into one record per data row. Rows with
// empty text are skipped and counted, never errored; malformed rows
// (wrong field count) are skipped with a note.
type CSVAdapter struct {
	Reader io.Reader

	// TextColumn overrides the mandatory column name. Empty means
	// COMMENT_TEXT_COLUMN; the exporter's output re-imports with "text".
	TextColumn string
}

func (a *CSVAdapter) Adapt(ctx context.Context) ([]models.CommentRecord, *SourceReport, error) {
	textColumn := a.TextColumn
	if textColumn == "" {
		textColumn = COMMENT_TEXT_COLUMN
	}

	r := csv.NewReader(a.Reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &models.ValidationError{Reason: "empty file"}
		}
		return nil, nil, &models.ValidationError{Reason: "unreadable header: " + err.Error()}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	textIdx, ok := columns[textColumn]
	if !ok {
		return nil, nil, &models.ValidationError{Reason: "missing column"}
	}

	records := []models.CommentRecord{}
	report := &SourceReport{}

	for line := 2; ; line++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Skipped++
			report.note("line %d: unreadable row: %v", line, err)
			continue
		}

		if len(row) != len(header) {
			report.Skipped++
			report.note("line %d: expected %d fields, got %d", line, len(header), len(row))
			continue
		}

		text := strings.TrimSpace(row[textIdx])
		if text == "" {
			report.Skipped++
			continue
		}

		record := models.CommentRecord{
			Text:     text,
			Platform: models.PlatformCSV,
		}
		if idx, ok := columns[authorColumn]; ok {
			record.Author = strings.TrimSpace(row[idx])
		}
		if idx, ok := columns[timestampColumn]; ok {
			record.Timestamp = parseTimestamp(row[idx])
		}
		if p, ok := rowPlatform(columns, row); ok {
			record.Platform = p
		}

		records = append(records, record)
		report.Produced++
	}

	if report.Skipped > 0 {
		slog.Info("[CSVAdapter] Skipped rows during import",
			slog.Int("produced", report.Produced),
			slog.Int("skipped", report.Skipped))
	}
	return records, report, nil
}

func rowPlatform(columns map[string]int, row []string) (models.Platform, bool) {
	for _, name := range []string{platformColumn, exportPlatformColumn} {
		idx, ok := columns[name]
		if !ok {
			continue
		}
		p := models.Platform(strings.ToLower(strings.TrimSpace(row[idx])))
		if p.Valid() {
			return p, true
		}
	}
	return "", false
}

// parseTimestamp accepts RFC3339, a plain datetime, a spreadsheet-style
// date, or unix seconds. Anything else leaves the record undated rather
// than failing the row.
func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		t := time.Unix(secs, 0).UTC()
		return &t
	}

	return nil
}

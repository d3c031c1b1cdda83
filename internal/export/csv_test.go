package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentlens/internal/adapters"
	"github.com/spacesedan/commentlens/internal/models"
)

func exportBatch() models.AnalysisBatch {
	when := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	return models.AnalysisBatch{
		ID: "batch-42",
		Results: []models.AnalysisResult{
			{
				Record: models.CommentRecord{
					Text:      "absolutely loved it",
					Platform:  models.PlatformInstagram,
					Timestamp: &when,
				},
				Label:      models.LabelPositive,
				Confidence: 0.9312,
			},
			{
				Record: models.CommentRecord{
					Text:     "not my thing",
					Platform: models.PlatformTikTok,
				},
				Label:      models.LabelNegative,
				Confidence: 0.8,
			},
			{
				Record: models.CommentRecord{
					Text:     "classifier never saw this",
					Platform: models.PlatformCSV,
				},
				Err: "classifier unavailable",
			},
		},
	}
}

func TestWriteColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportBatch()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"absolutely loved it", "instagram", "2024-06-01T08:30:00Z", "positive", "0.9312", "",
	}, rows[1])

	// Errored rows keep their text but have empty label and confidence.
	assert.Equal(t, "classifier never saw this", rows[3][0])
	assert.Empty(t, rows[3][3])
	assert.Empty(t, rows[3][4])
	assert.Equal(t, "classifier unavailable", rows[3][5])
}

func TestExportRoundTripsThroughCSVAdapter(t *testing.T) {
	batch := exportBatch()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, batch))

	adapter := &adapters.CSVAdapter{Reader: strings.NewReader(buf.String()), TextColumn: "text"}
	records, _, err := adapter.Adapt(context.Background())
	require.NoError(t, err)

	// Every result had non-empty text, so the count survives re-import.
	require.Len(t, records, batch.Len())
	assert.Equal(t, models.PlatformInstagram, records[0].Platform)
	require.NotNil(t, records[0].Timestamp)
	assert.Equal(t, batch.Results[0].Record.Timestamp.UTC(), records[0].Timestamp.UTC())
}

func TestWriteFileFailureIsExportError(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), exportBatch())

	var exportErr *models.ExportError
	require.ErrorAs(t, err, &exportErr)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, exportBatch()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strings.Join(Header, ",")))
}

func TestWriteTemplateHasMandatoryColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "comment_text", rows[0][0])
	assert.Greater(t, len(rows), 1)
}

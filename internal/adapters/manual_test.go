package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentlens/internal/models"
)

func TestManualAdapterProducesOneTrimmedRecord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "I love this product!", want: "I love this product!"},
		{name: "surrounding whitespace", input: "  great stuff\n", want: "great stuff"},
		{name: "multiline", input: "line one\nline two", want: "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &ManualAdapter{Text: tt.input}

			records, report, err := adapter.Adapt(context.Background())
			require.NoError(t, err)
			require.Len(t, records, 1)

			assert.Equal(t, tt.want, records[0].Text)
			assert.Equal(t, models.PlatformManual, records[0].Platform)
			assert.Equal(t, 1, report.Produced)
		})
	}
}

func TestManualAdapterRejectsEmptyText(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		adapter := &ManualAdapter{Text: input}

		records, _, err := adapter.Adapt(context.Background())
		assert.Nil(t, records)

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "empty text", validationErr.Reason)
	}
}

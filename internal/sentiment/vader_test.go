package sentiment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentlens/internal/models"
)

func TestVADERPositiveText(t *testing.T) {
	label, confidence, err := VADERClassifier{}.Classify(context.Background(), "I love this product!")
	require.NoError(t, err)

	assert.Equal(t, models.LabelPositive, label)
	assert.Greater(t, confidence, 0.5)
}

func TestVADERNegativeText(t *testing.T) {
	label, confidence, err := VADERClassifier{}.Classify(context.Background(), "This is terrible, I hate it.")
	require.NoError(t, err)

	assert.Equal(t, models.LabelNegative, label)
	assert.Greater(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestVADERNeutralText(t *testing.T) {
	label, _, err := VADERClassifier{}.Classify(context.Background(), "The package arrived on Tuesday.")
	require.NoError(t, err)

	assert.Equal(t, models.LabelNeutral, label)
}

func TestVADERIsDeterministic(t *testing.T) {
	text := "Pretty good overall, though the shipping was slow."

	l1, c1, err := VADERClassifier{}.Classify(context.Background(), text)
	require.NoError(t, err)
	l2, c2, err := VADERClassifier{}.Classify(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, l1, l2)
	assert.Equal(t, c1, c2)
}

func TestConvertMarkdownToText(t *testing.T) {
	plain := ConvertMarkdownToText("**love** [this](https://example.com) _product_")

	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "<")
	assert.Contains(t, plain, "love")
	assert.Contains(t, plain, "product")
}

func TestPrepareTruncatesToSharedBudget(t *testing.T) {
	long := strings.Repeat("word ", MAX_INPUT_RUNES)

	first := Prepare(long)
	second := Prepare(long)

	assert.LessOrEqual(t, len([]rune(first)), MAX_INPUT_RUNES)
	// Truncation is lossy but deterministic.
	assert.Equal(t, first, second)
}

func TestCleanTextStripsURLsAndWhitespace(t *testing.T) {
	cleaned := CleanText("  so   nice https://example.com/post?x=1  \n")
	assert.Equal(t, "so nice", cleaned)
}

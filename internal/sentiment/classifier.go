// Package sentiment defines the classification boundary and its
// backends. Every backend shares the same truncation budget and text
// cleanup so repeated calls on the same input are deterministic.
package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/spacesedan/commentlens/internal/models"
)

// MAX_INPUT_RUNES caps classifier input, roughly the 512-token window of
// the roberta sentiment models. Truncation is lossy and applied by every
// backend before inference.
const MAX_INPUT_RUNES = 2000

type Classifier interface {
	// Classify labels one text. Backend unavailability is reported as an
	// error wrapping models.ErrClassifierUnavailable.
	Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error)
}

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText collapses whitespace and strips URLs before classification.
func CleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate enforces the shared input budget, rune-safe.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MAX_INPUT_RUNES {
		return text
	}
	return string(runes[:MAX_INPUT_RUNES])
}

// Prepare is the canonical clean-then-truncate applied by every backend.
func Prepare(text string) string {
	return Truncate(CleanText(text))
}

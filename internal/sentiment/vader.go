package sentiment

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/commentlens/internal/models"
)

var (
	vaderOnce     sync.Once
	vaderAnalyzer *govader.SentimentIntensityAnalyzer
	vaderMu       sync.Mutex
)

// getVaderAnalyzer lazily builds the lexicon once; scoring is serialized
// so the shared analyzer is safe under the pipeline's worker pool.
func getVaderAnalyzer() *govader.SentimentIntensityAnalyzer {
	vaderOnce.Do(func() {
		vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()
	})
	return vaderAnalyzer
}

// VADERClassifier scores sentiment locally with the VADER lexicon. It is
// the offline default backend and never becomes unavailable.
type VADERClassifier struct{}

func (VADERClassifier) Classify(_ context.Context, text string) (models.SentimentLabel, float64, error) {
	plain := Prepare(ConvertMarkdownToText(text))

	vaderMu.Lock()
	scores := getVaderAnalyzer().PolarityScores(plain)
	vaderMu.Unlock()

	compound := scores.Compound

	switch {
	case compound >= 0.20:
		return models.LabelPositive, clamp01(compound), nil
	case compound <= -0.20:
		return models.LabelNegative, clamp01(-compound), nil
	default:
		return models.LabelNeutral, clamp01(scores.Neutral), nil
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// ConvertMarkdownToText flattens markdown formatting so the lexicon sees
// plain words.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := htmlTagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(stripped), " ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

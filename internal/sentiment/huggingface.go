package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
)

// HuggingFaceClassifier runs hosted inference against a primary model and
// falls back to a secondary model identifier when the primary cannot be
// reached. Selection order is always primary-then-fallback.
type HuggingFaceClassifier struct {
	Primary  string
	Fallback string

	// Client overrides the shared singleton; tests inject one pointed at
	// a local server.
	Client *clients.HuggingFaceClient
}

func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	client := c.Client
	if client == nil {
		client = clients.GetHuggingFaceClient()
	}

	input := Prepare(text)

	scores, primaryErr := client.Classify(ctx, c.Primary, input)
	if primaryErr != nil {
		slog.Warn("[HuggingFaceClassifier] Primary model failed, trying fallback",
			slog.String("model", c.Primary),
			slog.String("error", primaryErr.Error()))

		var fallbackErr error
		scores, fallbackErr = client.Classify(ctx, c.Fallback, input)
		if fallbackErr != nil {
			return "", 0, fmt.Errorf("%w: primary %q: %v; fallback %q: %v",
				models.ErrClassifierUnavailable, c.Primary, primaryErr, c.Fallback, fallbackErr)
		}
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	label, ok := mapModelLabel(best.Label)
	if !ok {
		return "", 0, fmt.Errorf("%w: unrecognized model label %q",
			models.ErrClassifierUnavailable, best.Label)
	}
	return label, best.Score, nil
}

// mapModelLabel normalizes the label vocabularies the roberta sentiment
// models emit.
func mapModelLabel(raw string) (models.SentimentLabel, bool) {
	switch strings.ToUpper(raw) {
	case "LABEL_0", "NEGATIVE":
		return models.LabelNegative, true
	case "LABEL_1", "NEUTRAL":
		return models.LabelNeutral, true
	case "LABEL_2", "POSITIVE":
		return models.LabelPositive, true
	}
	return "", false
}

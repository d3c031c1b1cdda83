package adapters

import (
	"context"
	"strings"

	"github.com/spacesedan/commentlens/internal/models"
)

// ManualAdapter wraps one directly typed comment.
type ManualAdapter struct {
	Text string
}

func (a *ManualAdapter) Adapt(ctx context.Context) ([]models.CommentRecord, *SourceReport, error) {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return nil, nil, &models.ValidationError{Reason: "empty text"}
	}

	records := []models.CommentRecord{{
		Text:     text,
		Platform: models.PlatformManual,
	}}
	return records, &SourceReport{Produced: 1}, nil
}

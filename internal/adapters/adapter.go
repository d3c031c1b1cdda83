// Package adapters converts raw input modalities (manual text, CSV,
// scraped post URL) into a uniform stream of CommentRecords.
package adapters

import (
	"context"
	"fmt"

	"github.com/spacesedan/commentlens/internal/models"
)

// SourceReport accounts for input that was read but produced no record,
// so skips stay reportable instead of disappearing.
type SourceReport struct {
	Produced int
	Skipped  int
	Notes    []string
}

func (r *SourceReport) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

type SourceAdapter interface {
	// Adapt produces records in source order. A validation or scrape
	// failure returns a nil slice; an empty source returns an empty
	// slice and a nil error.
	Adapt(ctx context.Context) ([]models.CommentRecord, *SourceReport, error)
}

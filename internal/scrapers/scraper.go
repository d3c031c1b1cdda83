// Package scrapers fetches raw comment payloads from social platforms.
// Each scraper returns text plus optional author/timestamp metadata and
// reports fetch problems as models.ScrapeError.
package scrapers

import (
	"context"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

// RawComment is one comment payload as returned by a platform API,
// before adapter normalization.
type RawComment struct {
	Text      string     `json:"text"`
	Author    string     `json:"author,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type Scraper interface {
	Platform() models.Platform

	// Scrape fetches every comment for a post. A reachable post with no
	// comments returns an empty slice and a nil error; only fetch
	// problems produce a ScrapeError.
	Scrape(ctx context.Context, postID string) ([]RawComment, error)
}

func unixTime(seconds int64) *time.Time {
	if seconds <= 0 {
		return nil
	}
	t := time.Unix(seconds, 0).UTC()
	return &t
}

package scrapers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/spacesedan/commentlens/internal/models"
)

// CommentCache stores scraped payloads keyed by platform and post id.
// Satisfied by clients.ValkeyClient.
type CommentCache interface {
	GetCachedComments(ctx context.Context, platform, postID string) ([]byte, bool)
	CacheComments(ctx context.Context, platform, postID string, payload []byte) error
}

// CachedScraper serves a repeat scrape of the same post from the cache
// instead of hitting the platform again. Cache problems never fail a
// scrape; they just fall through to the network.
type CachedScraper struct {
	Inner Scraper
	Cache CommentCache
}

func (c *CachedScraper) Platform() models.Platform { return c.Inner.Platform() }

func (c *CachedScraper) Scrape(ctx context.Context, postID string) ([]RawComment, error) {
	platform := string(c.Inner.Platform())

	if payload, ok := c.Cache.GetCachedComments(ctx, platform, postID); ok {
		var comments []RawComment
		if err := json.Unmarshal(payload, &comments); err == nil {
			slog.Info("[CachedScraper] Serving comments from cache",
				slog.String("platform", platform),
				slog.String("post_id", postID),
				slog.Int("comments", len(comments)))
			return comments, nil
		}
		slog.Warn("[CachedScraper] Discarding unreadable cache entry",
			slog.String("platform", platform),
			slog.String("post_id", postID))
	}

	comments, err := c.Inner.Scrape(ctx, postID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(comments); err == nil {
		if err := c.Cache.CacheComments(ctx, platform, postID, payload); err != nil {
			slog.Warn("[CachedScraper] Failed to cache comments",
				slog.String("platform", platform),
				slog.String("post_id", postID),
				slog.String("error", err.Error()))
		}
	}

	return comments, nil
}

package adapters

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/scrapers"
)

// Post URL shapes the platforms publish.
var (
	instagramPostPattern = regexp.MustCompile(`instagram\.com/p/([A-Za-z0-9_-]+)`)
	tiktokVideoPattern   = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)
)

// ExtractPostID pulls the platform-native post identifier out of a URL,
// or reports that the URL does not match the platform's shape.
func ExtractPostID(rawURL string, platform models.Platform) (string, bool) {
	var pattern *regexp.Regexp
	switch platform {
	case models.PlatformInstagram:
		pattern = instagramPostPattern
	case models.PlatformTikTok:
		pattern = tiktokVideoPattern
	default:
		return "", false
	}

	m := pattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DetectPlatform guesses the platform from the URL host. Used when the
// caller omits an explicit platform selector.
func DetectPlatform(rawURL string) (models.Platform, bool) {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, "instagram.com"):
		return models.PlatformInstagram, true
	case strings.Contains(lower, "tiktok.com"):
		return models.PlatformTikTok, true
	}
	return "", false
}

// ScrapeAdapter validates a post URL and maps the scraper's raw payloads
// into CommentRecords. URL validation happens before any network call.
type ScrapeAdapter struct {
	URL     string
	Scraper scrapers.Scraper
}

func (a *ScrapeAdapter) Adapt(ctx context.Context) ([]models.CommentRecord, *SourceReport, error) {
	platform := a.Scraper.Platform()

	postID, ok := ExtractPostID(a.URL, platform)
	if !ok {
		return nil, nil, &models.ValidationError{Reason: "url format mismatch"}
	}

	comments, err := a.Scraper.Scrape(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	// Zero comments is a valid-but-empty result, not a failure.
	records := make([]models.CommentRecord, 0, len(comments))
	report := &SourceReport{}
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			report.Skipped++
			continue
		}
		records = append(records, models.CommentRecord{
			Text:      text,
			Platform:  platform,
			Author:    c.Author,
			Timestamp: c.Timestamp,
			Metadata: map[string]string{
				"post_id": postID,
				"url":     a.URL,
			},
		})
		report.Produced++
	}

	slog.Info("[ScrapeAdapter] Mapped scraped comments",
		slog.String("platform", string(platform)),
		slog.String("post_id", postID),
		slog.Int("produced", report.Produced),
		slog.Int("skipped", report.Skipped))
	return records, report, nil
}

package scrapers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
)

const (
	TIKTOK_BASE_URL = "https://www.tiktok.com"

	// aid identifies the web client to the comment-list endpoint.
	tiktokWebAppID = "1988"
)

type TikTokScraper struct {
	client   *http.Client
	pageSize int
	delay    time.Duration
	baseURL  string
}

func NewTikTokScraper(cfg config.Config) *TikTokScraper {
	return &TikTokScraper{
		client:   &http.Client{Timeout: cfg.ScraperTimeout},
		pageSize: cfg.CommentsPerPage,
		delay:    cfg.ScraperDelay,
		baseURL:  TIKTOK_BASE_URL,
	}
}

func (s *TikTokScraper) Platform() models.Platform { return models.PlatformTikTok }

// Scrape pages through the public comment-list endpoint for a video id.
// No credentials are needed, but the endpoint rate limits aggressively.
func (s *TikTokScraper) Scrape(ctx context.Context, postID string) ([]RawComment, error) {
	var comments []RawComment
	cursor := 0

	for {
		data, err := s.fetchPage(ctx, postID, cursor)
		if err != nil {
			return nil, err
		}

		page := data.Get("comments").Array()
		for _, c := range page {
			comments = append(comments, RawComment{
				Text:      c.Get("text").String(),
				Author:    c.Get("user.unique_id").String(),
				Timestamp: unixTime(c.Get("create_time").Int()),
			})
		}

		if !data.Get("has_more").Bool() || len(page) == 0 {
			break
		}
		cursor += s.pageSize

		select {
		case <-ctx.Done():
			return nil, &models.ScrapeError{Reason: "network failure", Err: ctx.Err()}
		case <-time.After(s.delay):
		}
	}

	slog.Info("[TikTokScraper] Scrape finished",
		slog.String("video_id", postID),
		slog.Int("comments", len(comments)))
	return comments, nil
}

func (s *TikTokScraper) fetchPage(ctx context.Context, postID string, cursor int) (gjson.Result, error) {
	params := url.Values{}
	params.Set("aid", tiktokWebAppID)
	params.Set("aweme_id", postID)
	params.Set("count", strconv.Itoa(s.pageSize))
	params.Set("cursor", strconv.Itoa(cursor))

	endpoint := fmt.Sprintf("%s/api/comment/list/?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "network failure", Err: err}
	}
	req.Header.Set("User-Agent", clients.USER_AGENT)

	resp, err := s.client.Do(req)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "network failure", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return gjson.Result{}, &models.ScrapeError{Reason: "rate limited"}
	default:
		return gjson.Result{}, &models.ScrapeError{
			Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "network failure", Err: err}
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &models.ScrapeError{Reason: "malformed response payload"}
	}
	return gjson.ParseBytes(body), nil
}

package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
)

const (
	INSTAGRAM_BASE_URL            = "https://www.instagram.com"
	INSTAGRAM_APP_ID              = "936619743392459"
	instagramParentCommentsQuery  = "97b41c52301f77ce508f55e66d17620e"
	instagramThreadedRepliesQuery = "863813fb3a4d6501723f11d1e44a42b1"
)

type InstagramScraper struct {
	client   *http.Client
	creds    config.InstagramCredentials
	pageSize int
	delay    time.Duration
	baseURL  string
}

func NewInstagramScraper(cfg config.Config) *InstagramScraper {
	return &InstagramScraper{
		client:   &http.Client{Timeout: cfg.ScraperTimeout},
		creds:    cfg.Instagram,
		pageSize: cfg.CommentsPerPage,
		delay:    cfg.ScraperDelay,
		baseURL:  INSTAGRAM_BASE_URL,
	}
}

func (s *InstagramScraper) Platform() models.Platform { return models.PlatformInstagram }

// Scrape pages through the parent-comment GraphQL edge for a post
// shortcode and pulls each parent's threaded replies, so the result
// covers the whole comment tree. Instagram requires a signed-in session,
// so the configured session secrets must all be present.
func (s *InstagramScraper) Scrape(ctx context.Context, postID string) ([]RawComment, error) {
	if !s.creds.Complete() {
		return nil, &models.ScrapeError{Reason: "missing credentials"}
	}

	var comments []RawComment
	cursor := ""

	for {
		data, err := s.fetchPage(ctx, postID, cursor)
		if err != nil {
			return nil, err
		}

		media := data.Get("data.shortcode_media")
		if !media.Exists() {
			return nil, &models.ScrapeError{Reason: "post unavailable or private"}
		}

		edgeInfo := media.Get("edge_media_to_parent_comment")
		for _, edge := range edgeInfo.Get("edges").Array() {
			node := edge.Get("node")
			comments = append(comments, RawComment{
				Text:      node.Get("text").String(),
				Author:    node.Get("owner.username").String(),
				Timestamp: unixTime(node.Get("created_at").Int()),
			})

			if node.Get("edge_threaded_comments.count").Int() > 0 {
				replies, err := s.fetchReplies(ctx, postID, node.Get("id").String())
				if err != nil {
					return nil, err
				}
				comments = append(comments, replies...)
			}
		}

		if !edgeInfo.Get("page_info.has_next_page").Bool() {
			break
		}
		cursor = edgeInfo.Get("page_info.end_cursor").String()

		// Polite delay between pages.
		select {
		case <-ctx.Done():
			return nil, &models.ScrapeError{Reason: "network failure", Err: ctx.Err()}
		case <-time.After(s.delay):
		}
	}

	slog.Info("[InstagramScraper] Scrape finished",
		slog.String("post_id", postID),
		slog.Int("comments", len(comments)))
	return comments, nil
}

// fetchReplies pages through a parent comment's threaded-reply edge.
func (s *InstagramScraper) fetchReplies(ctx context.Context, postID, commentID string) ([]RawComment, error) {
	var replies []RawComment
	cursor := ""

	for {
		variables := map[string]any{
			"comment_id": commentID,
			"first":      s.pageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		data, err := s.graphql(ctx, instagramThreadedRepliesQuery, variables, postID)
		if err != nil {
			return nil, err
		}

		edgeInfo := data.Get("data.comment.edge_threaded_comments")
		if !edgeInfo.Exists() {
			break
		}
		for _, edge := range edgeInfo.Get("edges").Array() {
			node := edge.Get("node")
			replies = append(replies, RawComment{
				Text:      node.Get("text").String(),
				Author:    node.Get("owner.username").String(),
				Timestamp: unixTime(node.Get("created_at").Int()),
			})
		}

		if !edgeInfo.Get("page_info.has_next_page").Bool() {
			break
		}
		cursor = edgeInfo.Get("page_info.end_cursor").String()

		select {
		case <-ctx.Done():
			return nil, &models.ScrapeError{Reason: "network failure", Err: ctx.Err()}
		case <-time.After(s.delay):
		}
	}

	return replies, nil
}

func (s *InstagramScraper) fetchPage(ctx context.Context, postID, cursor string) (gjson.Result, error) {
	variables := map[string]any{
		"shortcode": postID,
		"first":     s.pageSize,
	}
	if cursor != "" {
		variables["after"] = cursor
	}
	return s.graphql(ctx, instagramParentCommentsQuery, variables, postID)
}

func (s *InstagramScraper) graphql(ctx context.Context, queryHash string, variables map[string]any, postID string) (gjson.Result, error) {
	varJSON, err := json.Marshal(variables)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "invalid query variables", Err: err}
	}

	endpoint := fmt.Sprintf("%s/graphql/query/?query_hash=%s&variables=%s",
		s.baseURL, queryHash, url.QueryEscape(string(varJSON)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "network failure", Err: err}
	}
	req.Header.Set("User-Agent", clients.USER_AGENT)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-IG-App-ID", INSTAGRAM_APP_ID)
	req.Header.Set("Referer", fmt.Sprintf("%s/p/%s/", s.baseURL, postID))
	req.Header.Set("Cookie", s.cookieHeader())

	resp, err := s.client.Do(req)
	if err != nil {
		return gjson.Result{}, &models.ScrapeError{Reason: "network failure", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return gjson.Result{}, &models.ScrapeError{Reason: "authentication failed"}
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

func (s *InstagramScraper) cookieHeader() string {
	return fmt.Sprintf("sessionid=%s; ds_user_id=%s; csrftoken=%s; mid=%s;",
		s.creds.SessionID, s.creds.UserID, s.creds.CSRFToken, s.creds.MID)
}

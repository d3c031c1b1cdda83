package scrapers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/models"
)

func tiktokConfig() config.Config {
	return config.Config{
		ScraperTimeout:  5 * time.Second,
		ScraperDelay:    time.Millisecond,
		CommentsPerPage: 2,
	}
}

func tiktokPage(comments []string, hasMore bool) string {
	items := ""
	for i, text := range comments {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(
			`{"text":%q,"create_time":1717200000,"user":{"unique_id":"creator%d"}}`,
			text, i)
	}
	return fmt.Sprintf(`{"comments":[%s],"has_more":%t}`, items, hasMore)
}

func TestTikTokScrapeSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comment/list/", r.URL.Path)
		assert.Equal(t, tiktokWebAppID, r.URL.Query().Get("aid"))
		assert.Equal(t, "7300000000000000000", r.URL.Query().Get("aweme_id"))
		fmt.Fprint(w, tiktokPage([]string{"so cool", "nah"}, false))
	}))
	defer server.Close()

	scraper := NewTikTokScraper(tiktokConfig())
	scraper.baseURL = server.URL

	comments, err := scraper.Scrape(context.Background(), "7300000000000000000")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "so cool", comments[0].Text)
	assert.Equal(t, "creator0", comments[0].Author)
	require.NotNil(t, comments[1].Timestamp)
}

func TestTikTokScrapePaginatesByCursor(t *testing.T) {
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)
		if cursor == "0" {
			fmt.Fprint(w, tiktokPage([]string{"a", "b"}, true))
			return
		}
		fmt.Fprint(w, tiktokPage([]string{"c"}, false))
	}))
	defer server.Close()

	scraper := NewTikTokScraper(tiktokConfig())
	scraper.baseURL = server.URL

	comments, err := scraper.Scrape(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, []string{"0", "2"}, cursors)
}

func TestTikTokScrapeRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	scraper := NewTikTokScraper(tiktokConfig())
	scraper.baseURL = server.URL

	_, err := scraper.Scrape(context.Background(), "42")

	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "rate limited", scrapeErr.Reason)
}

func TestTikTokScrapeMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	scraper := NewTikTokScraper(tiktokConfig())
	scraper.baseURL = server.URL

	_, err := scraper.Scrape(context.Background(), "42")

	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "malformed response payload", scrapeErr.Reason)
}

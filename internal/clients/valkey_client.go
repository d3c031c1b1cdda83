package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

// Scraped comments are cached for a day; a repeat analysis of the same
// post within that window skips the network entirely.
const SCRAPE_CACHE_TTL_SECONDS = 86400

type ValkeyClient struct {
	Client valkey.Client
}

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

// InitValkey connects the shared cache client. The cache is optional:
// callers that never initialize it simply scrape every time.
func InitValkey(opts ValkeyOptions) (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		clientOpts := valkey.ClientOption{
			InitAddress:      []string{opts.Address},
			Password:         opts.Password,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if opts.UseTLS {
			clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(clientOpts)
		if err != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if c := client.Do(ctx, client.B().Ping().Build()); c.Error() != nil {
			client.Close()
			initErr = fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error())
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	if initErr != nil {
		return nil, initErr
	}
	if valkeyInstance == nil {
		return nil, fmt.Errorf("[ValkeyClient] client initialization previously failed")
	}
	return valkeyInstance, nil
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// CacheComments stores a scraped payload under scrape:<platform>:<post_id>.
func (vc *ValkeyClient) CacheComments(ctx context.Context, platform, postID string, payload []byte) error {
	key := scrapeCacheKey(platform, postID)
	completed := []valkey.Completed{
		vc.Client.B().Set().Key(key).Value(string(payload)).Build(),
		vc.Client.B().Expire().Key(key).Seconds(SCRAPE_CACHE_TTL_SECONDS).Build(),
	}

	responses := vc.DoMultiWithRetry(ctx, completed, 3)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return err
		}
	}

	slog.Info("[ValkeyClient] Cached scraped comments",
		slog.String("key", key))
	return nil
}

// GetCachedComments returns a previously cached payload, if any.
func (vc *ValkeyClient) GetCachedComments(ctx context.Context, platform, postID string) ([]byte, bool) {
	key := scrapeCacheKey(platform, postID)
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(key).Build(), 3)
	if res.Error() != nil {
		return nil, false
	}

	payload, err := res.AsBytes()
	if err != nil || len(payload) == 0 {
		return nil, false
	}
	return payload, true
}

func scrapeCacheKey(platform, postID string) string {
	return "scrape:" + platform + ":" + postID
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 250)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil || !isRetryableError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}

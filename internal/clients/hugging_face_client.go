package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

const HF_INFERENCE_BASE_URL = "https://api-inference.huggingface.co/models/"

var (
	huggingFaceInstance *HuggingFaceClient
	huggingFaceOnce     sync.Once
)

// ModelScore is one entry of a hosted text-classification response.
type ModelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type HuggingFaceClient struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

// GetHuggingFaceClient returns the process-wide inference client. The
// model backend is expensive to warm up, so the client is created once
// and shared by every caller.
func GetHuggingFaceClient() *HuggingFaceClient {
	var timeout time.Duration
	env := os.Getenv("APP_ENV")
	if env == "production" {
		timeout = 10 * time.Second
	} else {
		timeout = 60 * time.Second
	}
	huggingFaceOnce.Do(func() {
		slog.Info("[HuggingFaceClient] Initializing Client",
			slog.Duration("timeout", timeout),
			slog.String("env", env))
		huggingFaceInstance = NewHuggingFaceClient(
			HF_INFERENCE_BASE_URL,
			os.Getenv("HUGGINGFACE_API_TOKEN"),
			timeout,
		)
	})
	return huggingFaceInstance
}

// NewHuggingFaceClient builds a standalone client; tests point it at an
// httptest server.
func NewHuggingFaceClient(baseURL, token string, timeout time.Duration) *HuggingFaceClient {
	return &HuggingFaceClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		Token:   token,
	}
}

// Classify runs hosted inference for one model and returns its label
// scores. A 503 means the model is still loading and is retried like a
// transport failure.
func (h *HuggingFaceClient) Classify(ctx context.Context, model, text string) ([]ModelScore, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.DoWithRetry(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference returned status %d", resp.StatusCode)
	}

	// The hosted endpoint nests scores one level deep for a single input.
	var nested [][]ModelScore
	if err := json.Unmarshal(respBody, &nested); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("model", model),
			slog.String("error", err.Error()),
			getPreview(respBody))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, fmt.Errorf("inference returned no scores")
	}

	return nested[0], nil
}

func (h *HuggingFaceClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			// The previous attempt consumed the body.
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, err
			}
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if attempt == MAX_RETRIES-1 {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	if err == nil {
		err = fmt.Errorf("request failed after %d attempts", MAX_RETRIES)
	}
	return nil, err
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}

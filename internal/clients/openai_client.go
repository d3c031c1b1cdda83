package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openAIRequestTimeout = 60 * time.Second

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient lazily initializes the shared OpenAI client. It errors
// instead of panicking so a missing key surfaces as a classifier failure,
// not a crash of the whole analysis run.
func GetOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY in environment")
	}
	openAIOnce.Do(func() {
		openAIClientInstance = NewOpenAIClient("", apiKey)
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, nil
}

// NewOpenAIClient builds a standalone client. An empty baseURL keeps the
// default API endpoint; tests point it at an httptest server.
func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}

	return &OpenAIClient{
		Client: openai.NewClientWithConfig(config),
	}
}

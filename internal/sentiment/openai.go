package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
)

const openAIRetryAttempts = 3

const sentimentSystemPrompt = `You are a sentiment classifier. ` +
	`Respond with a JSON object of the form ` +
	`{"label": "positive"|"neutral"|"negative", "confidence": <0..1>} ` +
	`describing the sentiment of the user's text. Respond with JSON only.`

// OpenAIClassifier labels text through a chat completion with a JSON
// response format.
type OpenAIClassifier struct {
	Model string

	// Client overrides the shared singleton; tests inject one pointed at
	// a local server.
	Client *clients.OpenAIClient
}

type openAIVerdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	client := c.Client
	if client == nil {
		var err error
		client, err = clients.GetOpenAIClient()
		if err != nil {
			return "", 0, fmt.Errorf("%w: %v", models.ErrClassifierUnavailable, err)
		}
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: sentimentSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: Prepare(text)},
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < openAIRetryAttempts; i++ {
		resp, completionErr = client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.Model,
			Messages: messages,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[OpenAIClassifier] Completion failed, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", completionErr.Error()))

		select {
		case <-ctx.Done():
			return "", 0, fmt.Errorf("%w: %v", models.ErrClassifierUnavailable, ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
	if completionErr != nil {
		return "", 0, fmt.Errorf("%w: %v", models.ErrClassifierUnavailable, completionErr)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("%w: completion returned no choices", models.ErrClassifierUnavailable)
	}

	var verdict openAIVerdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &verdict); err != nil {
		return "", 0, fmt.Errorf("%w: unparseable completion: %v", models.ErrClassifierUnavailable, err)
	}

	label := models.SentimentLabel(verdict.Label)
	switch label {
	case models.LabelPositive, models.LabelNeutral, models.LabelNegative:
	default:
		return "", 0, fmt.Errorf("%w: unrecognized label %q", models.ErrClassifierUnavailable, verdict.Label)
	}

	confidence := verdict.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0
	}
	return label, confidence, nil
}

package sentiment

import (
	"fmt"

	"github.com/spacesedan/commentlens/config"
)

// FromConfig selects the classifier backend named in the configuration.
func FromConfig(cfg config.Config) (Classifier, error) {
	switch cfg.Backend {
	case "", "vader":
		return VADERClassifier{}, nil
	case "huggingface":
		return &HuggingFaceClassifier{
			Primary:  cfg.SentimentModel,
			Fallback: cfg.FallbackModel,
		}, nil
	case "openai":
		return &OpenAIClassifier{Model: cfg.OpenAIModel}, nil
	}
	return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Backend)
}

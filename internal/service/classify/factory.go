package classify

import (
	"context"
	"fmt"

	"github.com/emergency-ai/backend/internal/config"
)

// New constructs the classification client selected by configuration.
func New(ctx context.Context, cfg config.ClassifierConfig) (Client, error) {
	switch cfg.ResolveProvider() {
	case config.ProviderArk:
		chatModel, err := cfg.Ark.NewChatModel(ctx, cfg.Temperature)
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		return NewArkClient(ctx, chatModel)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("no classification backend configured")
	}
}

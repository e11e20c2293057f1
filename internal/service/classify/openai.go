package classify

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient classifies through the OpenAI chat completion API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature *float64
}

// NewOpenAIClient builds an OpenAI-backed classification client. baseURL is
// optional and supports OpenAI-compatible gateways.
func NewOpenAIClient(apiKey, model, baseURL string, temperature *float64) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}
}

// Classify sends the instruction contract plus history as one chat
// completion and returns the model's raw text.
func (c *OpenAIClient) Classify(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.Instructions,
	})

	for _, msg := range req.History {
		role := msg.Role
		if role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	request := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if c.temperature != nil {
		request.Temperature = float32(*c.temperature)
	}

	response, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

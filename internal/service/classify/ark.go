package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ArkClient classifies through an eino chain over an Ark chat model.
type ArkClient struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkClient compiles the classification chain around the supplied chat
// model.
func NewArkClient(ctx context.Context, chatModel model.ChatModel) (*ArkClient, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{instructions}"),
		schema.MessagesPlaceholder("history", true),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classification chain: %w", err)
	}

	return &ArkClient{chain: runnable}, nil
}

// Classify runs one chain invocation and returns the model's raw text.
func (c *ArkClient) Classify(ctx context.Context, req Request) (string, error) {
	history := make([]*schema.Message, 0, len(req.History))
	for _, msg := range req.History {
		switch msg.Role {
		case "assistant":
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		default:
			history = append(history, schema.UserMessage(msg.Content))
		}
	}

	response, err := c.chain.Invoke(ctx, map[string]any{
		"instructions": req.Instructions,
		"history":      history,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if response == nil {
		return "", nil
	}

	return strings.TrimSpace(response.Content), nil
}

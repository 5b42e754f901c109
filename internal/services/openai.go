package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"

	"sentio-backend/internal/models"
)

// OpenAICompleter implements Completer on the OpenAI chat completions API.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds a client shared by all requests. The SDK's
// automatic retries are turned off: one upstream failure fails one request.
func NewOpenAICompleter(apiKey, model, baseURL string) *OpenAICompleter {
	opts := []oaioption.RequestOption{
		oaioption.WithAPIKey(apiKey),
		oaioption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, oaioption.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAICompleter{client: &client, model: model}
}

func (c *OpenAICompleter) Complete(ctx context.Context, turns []models.ChatTurn) (string, error) {
	msgs, err := toOpenAIMessages(turns)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		upErr := &UpstreamError{Provider: "openai", Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			upErr.StatusCode = apiErr.StatusCode
		}
		return "", upErr
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: "openai", Message: "no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(turns []models.ChatTurn) ([]openai.ChatCompletionMessageParamUnion, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for i, t := range turns {
		switch t.Role {
		case models.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(t.Content))
		case models.RoleUser:
			msgs = append(msgs, openai.UserMessage(t.Content))
		case models.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		default:
			return nil, fmt.Errorf("unsupported role %q at turn %d", t.Role, i)
		}
	}
	return msgs, nil
}

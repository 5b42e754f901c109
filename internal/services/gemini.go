package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sentio-backend/internal/models"
)

const geminiRoleModel = "model"

// GeminiCompleter implements Completer on the Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

func (c *GeminiCompleter) Close() {
	c.client.Close()
}

func (c *GeminiCompleter) Complete(ctx context.Context, turns []models.ChatTurn) (string, error) {
	system, history, message, err := splitGeminiTurns(turns)
	if err != nil {
		return "", err
	}

	// A fresh model per call keeps SystemInstruction request-local.
	model := c.client.GenerativeModel(c.model)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 {
		return "", &UpstreamError{Provider: "gemini", Message: "no candidates"}
	}

	cand := resp.Candidates[0]
	if cand.FinishReason != genai.FinishReasonStop {
		log.Printf("WARNING: Gemini stopped due to %s", cand.FinishReason)
	}
	return extractText(cand), nil
}

// splitGeminiTurns reshapes a conversation for a Gemini chat session.
// Leading system turns become the system instruction and the final turn,
// which must come from the user, is the message to send.
func splitGeminiTurns(turns []models.ChatTurn) (system string, history []*genai.Content, message string, err error) {
	if len(turns) == 0 {
		return "", nil, "", errors.New("empty conversation")
	}
	last := turns[len(turns)-1]
	if last.Role != models.RoleUser {
		return "", nil, "", fmt.Errorf("conversation must end with a user turn, got %q", last.Role)
	}

	rest := turns[:len(turns)-1]
	var instructions []string
	for len(rest) > 0 && rest[0].Role == models.RoleSystem {
		instructions = append(instructions, rest[0].Content)
		rest = rest[1:]
	}

	history = make([]*genai.Content, 0, len(rest))
	for i, t := range rest {
		var role string
		switch t.Role {
		case models.RoleUser, models.RoleSystem:
			// Gemini history has no system role.
			role = string(models.RoleUser)
		case models.RoleAssistant:
			role = geminiRoleModel
		default:
			return "", nil, "", fmt.Errorf("unsupported role %q at turn %d", t.Role, i)
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}

	return strings.Join(instructions, "\n\n"), history, last.Content, nil
}

func extractText(cand *genai.Candidate) string {
	var text strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}

package services

import (
	"context"

	"sentio-backend/internal/models"
)

// Completer sends an ordered conversation to a chat-completion provider and
// returns the text of its top choice.
type Completer interface {
	Complete(ctx context.Context, turns []models.ChatTurn) (string, error)
}

type ChatService struct {
	completer Completer
}

func NewChatService(completer Completer) *ChatService {
	return &ChatService{completer: completer}
}

// Reply runs one chat turn: the mode's system instruction, the client
// history and the new message go to the provider in a single call.
func (s *ChatService) Reply(ctx context.Context, req *models.ChatRequest) (string, error) {
	return s.completer.Complete(ctx, BuildConversation(req))
}

// BuildConversation returns the outbound sequence
// [system instruction] + history + [user message]. History is copied
// verbatim and in order.
func BuildConversation(req *models.ChatRequest) []models.ChatTurn {
	turns := make([]models.ChatTurn, 0, len(req.History)+2)
	turns = append(turns, models.ChatTurn{
		Role:    models.RoleSystem,
		Content: ResolveMode(req.Mode).Instruction(),
	})
	turns = append(turns, req.History...)
	turns = append(turns, models.ChatTurn{
		Role:    models.RoleUser,
		Content: req.Message,
	})
	return turns
}

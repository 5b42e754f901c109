package handlers

import (
	"context"
	"log"
	"net/http"

	"sentio-backend/internal/models"
)

const chatFailedMessage = "Failed to get response from AI."

type chatResponder interface {
	Reply(ctx context.Context, req *models.ChatRequest) (string, error)
}

type ChatHandler struct {
	chat chatResponder
}

func NewChatHandler(chat chatResponder) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if isBodyTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp(bodyTooLargeMessage))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body."))
		return
	}

	reply, err := h.chat.Reply(r.Context(), &req)
	if err != nil {
		log.Printf("[%s] chat: error communicating with provider: %v", requestID(r), err)
		writeJSON(w, http.StatusInternalServerError, errorResp(chatFailedMessage))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

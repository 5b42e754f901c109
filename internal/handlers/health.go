package handlers

import (
	"net/http"

	"sentio-backend/internal/models"
)

const testMessage = "Hello from the Sentio backend!"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Test answers GET /api/test with a fixed acknowledgment.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: testMessage})
}

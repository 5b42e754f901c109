package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sentio-backend/internal/models"
)

const (
	// same ceiling as express.json()
	maxBodyBytes = 100 << 10

	bodyTooLargeMessage = "Request body too large."
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return "-"
}

// decodeJSON reads at most maxBodyBytes of the request body into dst.
// A declared Content-Length over the limit is refused before any read.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.ContentLength > maxBodyBytes {
		return &http.MaxBytesError{Limit: maxBodyBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

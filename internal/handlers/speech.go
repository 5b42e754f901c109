package handlers

import (
	"io"
	"log"
	"net/http"

	"sentio-backend/internal/models"
	"sentio-backend/internal/services"
)

const (
	noTextMessage       = "No text provided."
	speechFailedMessage = "Failed to generate speech."

	audioContentType = "audio/mpeg"
	relayChunkSize   = 32 << 10
)

type SpeechHandler struct {
	synth services.Synthesizer
}

func NewSpeechHandler(synth services.Synthesizer) *SpeechHandler {
	return &SpeechHandler{synth: synth}
}

// Synthesize relays text to the speech provider and streams the audio back
// as it arrives. Once the first byte is written the status is committed, so
// a later upstream failure leaves the client with a truncated body.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req models.TTSRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if isBodyTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp(bodyTooLargeMessage))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp(noTextMessage))
		return
	}
	text, ok := req.Content()
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp(noTextMessage))
		return
	}

	audio, err := h.synth.SynthesizeStream(r.Context(), text)
	if err != nil {
		log.Printf("[%s] tts: error with speech provider: %v", requestID(r), err)
		writeJSON(w, http.StatusInternalServerError, errorResp(speechFailedMessage))
		return
	}
	defer audio.Close()

	w.Header().Set("Content-Type", audioContentType)
	w.WriteHeader(http.StatusOK)

	n, err := relay(w, audio)
	if err != nil {
		if r.Context().Err() != nil {
			log.Printf("[%s] tts: client went away after %d bytes", requestID(r), n)
		} else {
			log.Printf("[%s] tts: stream interrupted after %d bytes: %v", requestID(r), n, err)
		}
	}
}

// relay copies src to w one chunk at a time, flushing after each write so
// bytes reach the client as soon as the provider produces them. A slow
// client blocks the copy loop, which in turn stops reads from src.
func relay(w http.ResponseWriter, src io.Reader) (int64, error) {
	fw := &flushWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		fw.f = f
	}
	return io.CopyBuffer(fw, src, make([]byte, relayChunkSize))
}

type flushWriter struct {
	w io.Writer
	f http.Flusher
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.f != nil {
		fw.f.Flush()
	}
	return n, err
}

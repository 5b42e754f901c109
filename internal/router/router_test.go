package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sentio-backend/internal/handlers"
	"sentio-backend/internal/models"
	"sentio-backend/internal/services"
)

type fakeCompleter struct{}

func (fakeCompleter) Complete(ctx context.Context, turns []models.ChatTurn) (string, error) {
	return "echo: " + turns[len(turns)-1].Content, nil
}

type panicCompleter struct{}

func (panicCompleter) Complete(ctx context.Context, turns []models.ChatTurn) (string, error) {
	panic("provider client exploded")
}

type countingCompleter struct{ calls atomic.Int32 }

func (c *countingCompleter) Complete(ctx context.Context, turns []models.ChatTurn) (string, error) {
	c.calls.Add(1)
	return "ok", nil
}

type fakeSynth struct{ audio []byte }

func (f fakeSynth) SynthesizeStream(ctx context.Context, text string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.audio)), nil
}

// pipeSynth hands out the read side of a pipe so a test controls exactly
// when upstream audio arrives.
type pipeSynth struct{ body io.ReadCloser }

func (p pipeSynth) SynthesizeStream(ctx context.Context, text string) (io.ReadCloser, error) {
	return p.body, nil
}

func newTestRouter(c services.Completer) http.Handler {
	return newTestRouterWithSynth(c, fakeSynth{audio: []byte{0x49, 0x44, 0x33}})
}

func newTestRouterWithSynth(c services.Completer, s services.Synthesizer) http.Handler {
	return New(
		handlers.NewHealthHandler(),
		handlers.NewChatHandler(services.NewChatService(c)),
		handlers.NewSpeechHandler(s),
		[]string{"*"},
	)
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(fakeCompleter{})

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		status      int
		contentType string
	}{
		{"test acknowledgment", http.MethodGet, "/api/test", "", http.StatusOK, "application/json"},
		{"health", http.MethodGet, "/health", "", http.StatusOK, "application/json"},
		{"chat", http.MethodPost, "/api/chat", `{"message":"hi","mode":"Casual","history":[]}`, http.StatusOK, "application/json"},
		{"tts", http.MethodPost, "/api/tts", `{"text":"hi"}`, http.StatusOK, "audio/mpeg"},
		{"tts without text", http.MethodPost, "/api/tts", `{}`, http.StatusBadRequest, "application/json"},
		{"chat wrong method", http.MethodGet, "/api/chat", "", http.StatusMethodNotAllowed, ""},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rr.Code)
			}
			if tc.contentType != "" && rr.Header().Get("Content-Type") != tc.contentType {
				t.Fatalf("expected Content-Type %q, got %q", tc.contentType, rr.Header().Get("Content-Type"))
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected a request ID on every response")
			}
		})
	}
}

func TestRouter_ChatReply(t *testing.T) {
	r := newTestRouter(fakeCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"ping","mode":"Job","history":[]}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != "echo: ping" {
		t.Fatalf("unexpected response %q", resp.Response)
	}
}

func TestRouter_PanicBecomes500(t *testing.T) {
	r := newTestRouter(panicCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestRouter_ChatBodyTooLarge(t *testing.T) {
	completer := &countingCompleter{}
	r := newTestRouter(completer)

	big := `{"message":"` + strings.Repeat("a", 5<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}
	if n := completer.calls.Load(); n != 0 {
		t.Fatalf("expected no provider calls, got %d", n)
	}
}

type firstChunk struct {
	resp *http.Response
	data []byte
	err  error
}

func TestRouter_StreamsBeforeUpstreamFinishes(t *testing.T) {
	pr, pw := io.Pipe()
	srv := httptest.NewServer(newTestRouterWithSynth(fakeCompleter{}, pipeSynth{body: pr}))
	defer srv.Close()
	defer pw.Close()

	first := []byte("ID3-first-frame")
	rest := []byte("-second-frame-and-trailer")

	go pw.Write(first)

	got := make(chan firstChunk, 1)
	go func() {
		resp, err := http.Post(srv.URL+"/api/tts", "application/json", strings.NewReader(`{"text":"hi"}`))
		if err != nil {
			got <- firstChunk{err: err}
			return
		}
		buf := make([]byte, len(first))
		_, err = io.ReadFull(resp.Body, buf)
		got <- firstChunk{resp: resp, data: buf, err: err}
	}()

	var chunk firstChunk
	select {
	case chunk = <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("first audio chunk did not reach the client while the upstream was still open")
	}
	if chunk.err != nil {
		t.Fatalf("reading first chunk: %v", chunk.err)
	}
	defer chunk.resp.Body.Close()

	if chunk.resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, chunk.resp.StatusCode)
	}
	if ct := chunk.resp.Header.Get("Content-Type"); ct != "audio/mpeg" {
		t.Fatalf("expected audio/mpeg, got %q", ct)
	}
	if !bytes.Equal(chunk.data, first) {
		t.Fatalf("unexpected first chunk %q", chunk.data)
	}

	go func() {
		pw.Write(rest)
		pw.Close()
	}()

	tail, err := io.ReadAll(chunk.resp.Body)
	if err != nil {
		t.Fatalf("reading rest of stream: %v", err)
	}
	if !bytes.Equal(tail, rest) {
		t.Fatalf("unexpected stream tail %q", tail)
	}
}

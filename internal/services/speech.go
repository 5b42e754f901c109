package services

import (
	"context"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	DefaultElevenLabsBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID           = "21m00Tcm4TlvDq8ikWAM"
	DefaultSpeechModelID     = "eleven_monolingual_v1"
	DefaultStability         = 0.5
	DefaultSimilarityBoost   = 0.5

	// upper bound on how much of an error body is read
	maxErrorBodyBytes = 64 << 10
)

// Synthesizer turns text into an audio stream. The caller must Close the
// returned reader on every path.
type Synthesizer interface {
	SynthesizeStream(ctx context.Context, text string) (io.ReadCloser, error)
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string
	VoiceID string
	ModelID string
	Voice   VoiceSettings
}

type speechPayload struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// ElevenLabsSynthesizer implements Synthesizer on the ElevenLabs
// text-to-speech API.
type ElevenLabsSynthesizer struct {
	client  *resty.Client
	voiceID string
	modelID string
	voice   VoiceSettings
}

func NewElevenLabsSynthesizer(cfg ElevenLabsConfig) *ElevenLabsSynthesizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultElevenLabsBaseURL
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultSpeechModelID
	}
	if cfg.Voice == (VoiceSettings{}) {
		cfg.Voice = VoiceSettings{Stability: DefaultStability, SimilarityBoost: DefaultSimilarityBoost}
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("xi-api-key", cfg.APIKey)

	return &ElevenLabsSynthesizer{
		client:  client,
		voiceID: cfg.VoiceID,
		modelID: cfg.ModelID,
		voice:   cfg.Voice,
	}
}

// SynthesizeStream starts a synthesis request and returns the response body
// unread. The request is bound to ctx, so cancelling ctx aborts the stream.
func (s *ElevenLabsSynthesizer) SynthesizeStream(ctx context.Context, text string) (io.ReadCloser, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "audio/mpeg").
		SetPathParam("voiceID", s.voiceID).
		SetBody(speechPayload{
			Text:          text,
			ModelID:       s.modelID,
			VoiceSettings: s.voice,
		}).
		Post("/v1/text-to-speech/{voiceID}")
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			resp.RawBody().Close()
		}
		return nil, &UpstreamError{Provider: "elevenlabs", Err: err}
	}

	body := resp.RawBody()
	if !resp.IsSuccess() {
		defer body.Close()
		raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
		return nil, &UpstreamError{
			Provider:   "elevenlabs",
			StatusCode: resp.StatusCode(),
			Message:    elevenLabsErrorMessage(raw, resp.Status()),
		}
	}

	return body, nil
}

// elevenLabsErrorMessage pulls the human readable part out of an error body
// shaped like {"detail":{"status":"...","message":"..."}} or {"detail":"..."}.
func elevenLabsErrorMessage(raw []byte, fallback string) string {
	if msg := gjson.GetBytes(raw, "detail.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if detail := gjson.GetBytes(raw, "detail"); detail.Type == gjson.String && detail.String() != "" {
		return detail.String()
	}
	return fallback
}

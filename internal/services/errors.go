package services

import "fmt"

// UpstreamError reports a failed call to one of the AI providers.
type UpstreamError struct {
	Provider   string
	StatusCode int // zero when no HTTP response was received
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Provider + " request failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	switch {
	case e.Message != "":
		msg += ": " + e.Message
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

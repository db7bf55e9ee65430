package onboarding

import (
	"errors"
	"fmt"
)

const (
	DefaultLoadMessage   = "Failed to fetch questions"
	DefaultSubmitMessage = "Failed to submit responses"
)

var (
	ErrNotActive       = errors.New("onboarding is not accepting input")
	ErrUnknownQuestion = errors.New("question is not part of the session")
	ErrNotMultiChoice  = errors.New("question is not multi-choice")
	ErrNoAnswer        = errors.New("question has no answer yet")
	ErrNoCredentials   = errors.New("no credentials available")
)

// LoadError reports a failed question fetch. It is recoverable through Retry.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load questions: %s: %v", e.Message, e.Err)
	}
	return "load questions: " + e.Message
}

func (e *LoadError) Unwrap() error { return e.Err }

// SubmitError reports a failed submission. The accumulated answers are kept for a retry.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submit responses: %s: %v", e.Message, e.Err)
	}
	return "submit responses: " + e.Message
}

func (e *SubmitError) Unwrap() error { return e.Err }

// serverMessager is implemented by transport errors that carry a message from the backend.
type serverMessager interface {
	ServerMessage() string
}

// userMessage picks the backend-supplied message out of err, or fallback when there is none.
func userMessage(err error, fallback string) string {
	var sm serverMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

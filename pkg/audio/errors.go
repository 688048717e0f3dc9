package audio

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText    = errors.New("audio: text is empty after normalization")
	ErrTextTooShort = errors.New("audio: text is too short to synthesize")
)

// ProviderError is a failed upstream synthesis call. Retryable is decided
// from the HTTP status alone: rate limits and server faults are transient,
// auth and validation failures are not.
type ProviderError struct {
	Provider  string
	Status    int
	Message   string
	Retryable bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("audio: %s returned %d: %s", e.Provider, e.Status, e.Message)
}

func newProviderError(provider string, status int, message string) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Status:    status,
		Message:   message,
		Retryable: status == 429 || status >= 500,
	}
}

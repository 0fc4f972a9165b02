package service

import (
	"errors"

	"alcyxob/vitality-planner/internal/domain"
)

// User-facing messages. The presentation layer renders these verbatim.
const (
	GenerationFailedMessage  = "Failed to generate wellness plan. Please try again."
	MissingCredentialMessage = "API Key is missing. Please ensure it is set in the environment."
)

var (
	ErrMissingCredential    = errors.New("generation credential is not set")
	ErrGenerationInProgress = errors.New("a wellness plan is already being generated")

	// Tracking errors. Toggles only accept items of the current plan.
	ErrNoPlan          = errors.New("no wellness plan yet")
	ErrUnknownHabit    = errors.New("habit is not in the current plan")
	ErrUnknownExercise = errors.New("exercise day is not in the current plan")
)

// ConfigurationError means the submission cannot succeed until the
// environment is fixed. Retrying does not help.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string { return MissingCredentialMessage }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ProtocolError covers transport failures, empty responses and payloads that
// do not parse into a plan. Error() is the generic message; the cause is kept
// in Err for logs only.
type ProtocolError struct {
	RequestID string
	Err       error
}

func (e *ProtocolError) Error() string { return GenerationFailedMessage }

func (e *ProtocolError) Unwrap() error { return e.Err }

// UserMessage maps an error returned by Submit to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var configErr *ConfigurationError
	switch {
	case errors.As(err, &configErr):
		return configErr.Error()
	case errors.Is(err, ErrGenerationInProgress), errors.Is(err, domain.ErrInvalidProfile):
		return err.Error()
	default:
		return GenerationFailedMessage
	}
}

// Package server provides the HTTP API of the HR insights service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/hr-insights/internal/conversation"
	"github.com/jonathan/hr-insights/internal/skills"
)

// ErrRequirementSetNotFound indicates a requirement set id with no stored set
type ErrRequirementSetNotFound struct {
	ID string
}

func (e *ErrRequirementSetNotFound) Error() string {
	return fmt.Sprintf("requirement set not found: %s", e.ID)
}

// ErrForbidden indicates the caller may not act on a resource
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return "access denied: " + e.Reason
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedMedia indicates an upload in a format the service cannot read
type ErrUnsupportedMedia struct {
	ContentType string
}

func (e *ErrUnsupportedMedia) Error() string {
	return fmt.Sprintf("unsupported media type: %s (only plain text documents are accepted)", e.ContentType)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrRequirementSetNotFound
		forbidden   *ErrForbidden
		invalid     *ErrValidation
		unsupported *ErrUnsupportedMedia
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &notFound),
		errors.Is(err, conversation.ErrConversationNotFound),
		errors.Is(err, conversation.ErrMessageNotFound),
		errors.Is(err, skills.ErrNoSimilarSets):
		return http.StatusNotFound
	case errors.As(err, &forbidden), errors.Is(err, conversation.ErrNotOwner):
		return http.StatusForbidden
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts a validator failure into an ErrValidation naming
// the first offending field. Other errors pass through unchanged.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	msg := first.Tag()
	if first.Param() != "" {
		msg += "=" + first.Param()
	}
	return &ErrValidation{Field: first.Field(), Message: msg}
}

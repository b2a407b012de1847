package path

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a path does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrExtraction is returned when a PDF could not be reduced to text.
	ErrExtraction = errors.New("extraction failed")
	// ErrGeneration is returned when the completion backend call fails,
	// including deadline expiry.
	ErrGeneration = errors.New("generation failed")
	// ErrDecode is returned when the backend responded but its output
	// violated the chunk contract.
	ErrDecode = errors.New("decode failed")
	// ErrPersistence is returned when a store or blob write fails after
	// generation succeeded.
	ErrPersistence = errors.New("persistence failed")
	// ErrConflict is returned when an optimistic progress advance loses
	// the race; the caller should refetch and retry the user action.
	ErrConflict = errors.New("conflict")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"title": MsgRequired, "language": "invalid"}}

	want := "validation error: language: invalid; title: is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", &ValidationError{Fields: map[string]string{"title": MsgRequired}})

	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("errors.As(err, *ValidationError) = false, want true")
	}
	if verr.Fields["title"] != MsgRequired {
		t.Errorf("Fields[title] = %q", verr.Fields["title"])
	}
}

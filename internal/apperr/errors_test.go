package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gawa-wiki/gawa/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("invalid metric")

	if err.Error() != "invalid metric" {
		t.Errorf("expected 'invalid metric', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid limit", inner)

	if err.Error() != "invalid limit: parse failed" {
		t.Errorf("expected 'invalid limit: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("invalid metric")

	wrapped := fmt.Errorf("timeseries: %w", original)
	doubleWrapped := fmt.Errorf("stats handler: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "invalid metric" {
		t.Errorf("expected 'invalid metric', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

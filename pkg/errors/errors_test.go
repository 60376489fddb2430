package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestValidationCarriesFieldErrors(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("name", "The name field is required.")
	fields.Add("price", "The price must be at least 0.")
	fields.Add("price", "The price must be a number.")

	err := Validation(fields)
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if len(err.Fields()["price"]) != 2 {
		t.Fatalf("expected both price reasons, got %v", err.Fields()["price"])
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("record not found")
	err := Wrap(CodeNotFound, cause, "product missing")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Error() != "NOT_FOUND: product missing: record not found" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestAsUnwrapsThroughFmtWrapping(t *testing.T) {
	typed := New(CodeValidation, "bad input")
	wrapped := fmt.Errorf("handler: %w", typed)

	got := As(wrapped)
	if got == nil || got.Code() != CodeValidation {
		t.Fatalf("expected typed error back, got %v", got)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("expected nil for untyped errors")
	}
}

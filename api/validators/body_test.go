package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=0"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Widget","count":3}`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Widget" || payload.Count != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := typed.Fields()["body"]; !ok {
		t.Fatalf("expected body field error, got %v", typed.Fields())
	}
}

func TestDecodeJSONBodyKeysTypeMismatchByField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Widget","count":1.5}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := typed.Fields()["count"]
	if len(got) != 1 || got[0] != "The count field must be an integer." {
		t.Fatalf("expected count field error, got %v", typed.Fields())
	}
	if _, ok := typed.Fields()["body"]; ok {
		t.Fatalf("type mismatch must not land under body: %v", typed.Fields())
	}
}

func TestDecodeJSONBodyKeysWrongStringTypeByField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":5}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := typed.Fields()["name"]
	if len(got) != 1 || got[0] != "The name field must be a string." {
		t.Fatalf("expected name field error, got %v", typed.Fields())
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Widget","bogus":1}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsJSONFieldNames(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"count":-1}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := typed.Fields()
	if _, ok := fields["name"]; !ok {
		t.Fatalf("expected name field error, got %v", fields)
	}
	if _, ok := fields["count"]; !ok {
		t.Fatalf("expected count field error, got %v", fields)
	}
}

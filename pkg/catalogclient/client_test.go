package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchAllNormalizesPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		// one string-encoded price and one bare number
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"name":"Widget","price":"19.99","stock":5,"is_active":true},
			{"id":2,"name":"Gadget","price":249.99,"stock":2,"is_active":true}
		]}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	rows, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected price %s", rows[0].Price)
	}
	if !rows[1].Price.Equal(decimal.RequireFromString("249.99")) {
		t.Fatalf("unexpected price %s", rows[1].Price)
	}
	if client.Loading() {
		t.Fatalf("loading must reset after completion")
	}
	if client.LastError() != "" {
		t.Fatalf("last error must clear on success, got %q", client.LastError())
	}
}

func TestLoadingFlagIsSetDuringRequests(t *testing.T) {
	var client *Client
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !client.Loading() {
			t.Errorf("loading must be true while the request is in flight")
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client = New(WithBaseURL(server.URL))
	if _, err := client.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Loading() {
		t.Fatalf("loading must reset after completion")
	}
}

func TestFetchOneUnwrapsDataEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"id":7,"name":"Widget","description":null,"price":"19.99","stock":5,"is_active":true}}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	product, err := client.FetchOne(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 7 || product.Name != "Widget" || product.Description != nil {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestCreateSendsPayloadAndDecodesProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if payload["name"] != "Widget" {
			t.Fatalf("unexpected payload %v", payload)
		}
		if payload["price"] != "19.99" {
			t.Fatalf("price must go over the wire as a string, got %v", payload["price"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Product created successfully","data":{"id":7,"name":"Widget","price":"19.99","stock":5,"is_active":true}}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	product, err := client.Create(context.Background(), CreateProductInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("19.99"),
		Stock: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 7 {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestUpdateOmitsUnsetFieldsAndSendsExplicitNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if _, ok := payload["name"]; ok {
			t.Fatalf("unset fields must not appear in the body: %v", payload)
		}
		if raw, ok := payload["description"]; !ok || string(raw) != "null" {
			t.Fatalf("expected explicit null description, got %v", payload)
		}
		_, _ = w.Write([]byte(`{"message":"Product updated successfully","data":{"id":1,"name":"Widget","price":"19.99","stock":5,"is_active":true}}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	if _, err := client.Update(context.Background(), 1, UpdateProductInput{ClearDescription: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidationFailureSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation failed for product creation","errors":{"name":["The name field is required."]}}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	_, err := client.Create(context.Background(), CreateProductInput{})
	if err == nil {
		t.Fatalf("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", apiErr.Status)
	}
	if got := apiErr.Errors["name"]; len(got) != 1 || got[0] != "The name field is required." {
		t.Fatalf("unexpected errors %v", apiErr.Errors)
	}
	if client.LastError() != "Validation failed for product creation" {
		t.Fatalf("unexpected last error %q", client.LastError())
	}
}

func TestDeleteMissingProductFallsBackToDisplayMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	err := client.Delete(context.Background(), 999)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Failed to delete product" {
		t.Fatalf("unexpected fallback message %q", apiErr.Message)
	}
	if client.LastError() != "Failed to delete product" {
		t.Fatalf("unexpected last error %q", client.LastError())
	}
}

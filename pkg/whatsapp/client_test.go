package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[{"id":"wamid.ABC123"}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "12345", "secret-token")

	id, err := c.Send(context.Background(), "+5491134567890", "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "wamid.ABC123" {
		t.Fatalf("expected provider message id, got %q", id)
	}
	if gotPath != "/12345/messages" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["messaging_product"] != "whatsapp" || gotBody["to"] != "+5491134567890" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
}

func TestClientSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid recipient"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "12345", "secret-token")

	_, err := c.Send(context.Background(), "+5491134567890", "hola")
	if err == nil {
		t.Fatal("expected an error for a provider rejection")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected status code in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid recipient") {
		t.Fatalf("expected provider message in error, got %v", err)
	}
}

func TestClientSendUnconfigured(t *testing.T) {
	c := NewClient("", "", "")

	_, err := c.Send(context.Background(), "+5491134567890", "hola")
	if err == nil {
		t.Fatal("expected an error when the provider is not configured")
	}
}

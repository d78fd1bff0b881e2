package reminderclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunReminders(t *testing.T) {
	var gotPath, gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Internal-API-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"processed":3,"sent":2,"failed":1,"skipped_paid":1,"skipped_opt_out":0}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "internal-key")

	summary, err := c.RunReminders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/internal/notifications/run" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "internal-key" {
		t.Fatalf("expected internal api key header, got %q", gotKey)
	}
	if summary.Processed != 3 || summary.Sent != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunRemindersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	if _, err := c.RunReminders(context.Background()); err == nil {
		t.Fatal("expected an error for a failed run")
	}
}

func TestRunRemindersUnconfiguredBaseURL(t *testing.T) {
	c := NewClient("", "")

	if _, err := c.RunReminders(context.Background()); err == nil {
		t.Fatal("expected an error when base URL is missing")
	}
}

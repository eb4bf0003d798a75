package discovery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNotifySendsBlocks(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, zap.NewNop())
	grants := &Grants{Items: []*Grant{
		{UID: "a", Title: "Safety Fund", Link: "https://example.org/a", Relevance: 40, Deadline: "2026-06-30", Amount: "$50,000", Why: "matches lighting"},
	}}

	if err := notifier.Notify(context.Background(), grants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks, ok := payload["blocks"].([]any)
	if !ok || len(blocks) != 2 {
		t.Fatalf("expected header plus one section, got %v", payload["blocks"])
	}

	text := string(body)
	for _, want := range []string{"Safety Fund", "2026-06-30", "$50,000", "matches lighting"} {
		if !strings.Contains(text, want) {
			t.Fatalf("payload missing %q:\n%s", want, text)
		}
	}
}

func TestNotifyCapsSections(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	grants := &Grants{}
	for i := 0; i < 15; i++ {
		grants.Items = append(grants.Items, &Grant{UID: string(rune('a' + i)), Title: "Fund"})
	}

	notifier := NewNotifier(server.URL, zap.NewNop())
	if err := notifier.Notify(context.Background(), grants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := payload["blocks"].([]any)
	if len(blocks) != maxSlackItems+1 {
		t.Fatalf("expected %d blocks, got %d", maxSlackItems+1, len(blocks))
	}
}

func TestNotifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, zap.NewNop())
	grants := &Grants{Items: []*Grant{{UID: "a", Title: "Fund"}}}

	if err := notifier.Notify(context.Background(), grants); err == nil {
		t.Fatal("expected an error for a non-ok status")
	}
}

func TestNotifyEmptyList(t *testing.T) {
	notifier := NewNotifier("https://hooks.slack.invalid/services/x", zap.NewNop())

	if err := notifier.Notify(context.Background(), &Grants{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotifyRequiresWebhook(t *testing.T) {
	notifier := NewNotifier("", zap.NewNop())
	grants := &Grants{Items: []*Grant{{UID: "a"}}}

	if err := notifier.Notify(context.Background(), grants); err == nil {
		t.Fatal("expected an error when the webhook is not configured")
	}
}

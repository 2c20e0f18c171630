package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDiscordSend(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewDiscord(srv.URL, time.Second).Send(context.Background(), "**hello**"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got.Content != "**hello**" {
		t.Fatalf("unexpected content %q", got.Content)
	}
}

func TestDiscordSendRejectsOtherStatuses(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		err := NewDiscord(srv.URL, time.Second).Send(context.Background(), "x")
		srv.Close()
		if err == nil {
			t.Fatalf("expected failure for status %d", status)
		}
	}
}

func TestDiscordSendWithoutURL(t *testing.T) {
	err := NewDiscord("  ", time.Second).Send(context.Background(), "x")
	if !errors.Is(err, ErrWebhookNotConfigured) {
		t.Fatalf("expected ErrWebhookNotConfigured, got %v", err)
	}
}

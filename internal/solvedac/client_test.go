package solvedac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second)
}

func TestLookupFound(t *testing.T) {
	var gotHandle string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/show" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotHandle = r.URL.Query().Get("handle")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"handle":"Alice_01","solvedCount":412,"tier":14,"rating":1700}`))
	})

	out := c.Lookup(context.Background(), "Alice_01")

	if !out.OK() || out.Kind != Found {
		t.Fatalf("expected Found, got %v (%v)", out.Kind, out.Err)
	}
	if out.Stats.SolvedCount != 412 || out.Stats.Tier != 14 {
		t.Fatalf("unexpected stats: %+v", out.Stats)
	}
	if gotHandle != "Alice_01" {
		t.Fatalf("handle not passed through verbatim: %q", gotHandle)
	}
}

func TestLookupMissingFieldsDefaultToZero(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"handle":"bob"}`))
	})

	out := c.Lookup(context.Background(), "bob")
	if !out.OK() || out.Stats != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v (%v)", out, out.Err)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	out := c.Lookup(context.Background(), "ghost")
	if out.OK() || out.Kind != NotFound {
		t.Fatalf("expected NotFound, got %v", out.Kind)
	}
}

func TestLookupTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"negative count", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"solvedCount":-3}`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := NewClient(srv.URL, 100*time.Millisecond)

			out := c.Lookup(context.Background(), "alice")
			if out.OK() || out.Kind != TransportError {
				t.Fatalf("expected TransportError, got %v", out.Kind)
			}
			if out.Err == nil {
				t.Fatal("expected error detail")
			}
		})
	}
}

func TestLookupUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := NewClient(url, time.Second).Lookup(context.Background(), "alice")
	if out.Kind != TransportError {
		t.Fatalf("expected TransportError, got %v", out.Kind)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	if c.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.baseURL)
	}
	if c.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", c.httpClient.Timeout)
	}
}

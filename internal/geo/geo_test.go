package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Resolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","country":"Greece","city":"Athens"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != "Greece" {
		t.Fatalf("expected Greece, got %q", got)
	}
}

func TestClient_Resolve_CanonicalizesCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"country":"united kingdom"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != "United Kingdom" {
		t.Fatalf("expected United Kingdom, got %q", got)
	}
}

func TestClient_Resolve_Non200IsUnknown(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		c := NewClient(srv.URL, time.Second)
		if got := c.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
			t.Fatalf("status %d: expected %q, got %q", status, Unknown, got)
		}
		srv.Close()
	}
}

func TestClient_Resolve_MalformedBodyIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"country":`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
		t.Fatalf("expected %q, got %q", Unknown, got)
	}
}

func TestClient_Resolve_MissingFieldIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
		t.Fatalf("expected %q, got %q", Unknown, got)
	}
}

func TestClient_Resolve_TimeoutIsUnknown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	c := NewClient(srv.URL, 50*time.Millisecond)
	start := time.Now()
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
		t.Fatalf("expected %q, got %q", Unknown, got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout not enforced: took %v", elapsed)
	}
}

func TestClient_Resolve_UnreachableIsUnknown(t *testing.T) {
	// Closed port: the dial fails fast.
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	if got := c.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
		t.Fatalf("expected %q, got %q", Unknown, got)
	}
}

func TestNewClient_DefaultTimeoutApplied(t *testing.T) {
	c := NewClient("http://example.invalid/json/", 0)
	if c.http.Timeout != DefaultTimeout {
		t.Fatalf("expected %v, got %v", DefaultTimeout, c.http.Timeout)
	}
	if c.baseURL != "http://example.invalid/json" {
		t.Fatalf("trailing slash not trimmed: %q", c.baseURL)
	}
}

func TestStatic_Resolve(t *testing.T) {
	if got := (Static{}).Resolve(context.Background(), "1.2.3.4"); got != Unknown {
		t.Fatalf("zero value should resolve to %q, got %q", Unknown, got)
	}
	if got := (Static{Country: "Greece"}).Resolve(context.Background(), "1.2.3.4"); got != "Greece" {
		t.Fatalf("expected Greece, got %q", got)
	}
}

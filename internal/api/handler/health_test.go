package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth_Liveness(t *testing.T) {
	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/health", "", nil)

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealth_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		want     string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"store down", errors.New("unavailable"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			h := NewHealthHandler(map[string]Pinger{
				"user_store": pingerFunc(func(context.Context) error { return tt.err }),
			})
			c, rec := newContext(e, http.MethodGet, "/health/ready", "", nil)

			if err := h.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.want {
				t.Fatalf("expected status %q, got %q", tt.want, resp.Status)
			}
			if _, ok := resp.Dependencies["user_store"]; !ok {
				t.Fatalf("missing user_store dependency")
			}
		})
	}
}

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, MaxRetries: 2})
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shops" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":"s1"}],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`))
	})

	env, err := client.get(context.Background(), "/shops", nil, "")
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope")
	}

	page := env.Meta.toPage()
	if page.Page != 1 || page.Total != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected meta: %+v", page)
	}

	var shops []struct {
		ID string `json:"id"`
	}
	if err := decodeData(env, &shops); err != nil {
		t.Fatalf("decodeData returned error: %v", err)
	}
	if len(shops) != 1 || shops[0].ID != "s1" {
		t.Fatalf("unexpected data: %+v", shops)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrSessionExpired},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusConflict, domain.ErrUpstream},
	}

	for _, tc := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"success":false,"message":"nope"}`))
		})

		_, err := client.send(context.Background(), http.MethodPost, "/things", nil, "")
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestClient_BoundaryMessagePreserved(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"shop not found"}`))
	})

	_, err := client.get(context.Background(), "/shops/xx", nil, "")
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := err.Error(); got != "resource not found: shop not found" {
		t.Fatalf("boundary message lost: %q", got)
	}
}

func TestClient_GetRetriesOn5xx(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	if _, err := client.get(context.Background(), "/shops", nil, ""); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestClient_MutationsAreNotRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.send(context.Background(), http.MethodPost, "/orders", map[string]string{"a": "b"}, "tok")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("mutation must be sent exactly once, got %d attempts", got)
	}
}

func TestClient_AuthorizationHeaderForwarded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("Authorization = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	if _, err := client.get(context.Background(), "/orders", nil, "tok-123"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
}

func TestClient_ListQuery(t *testing.T) {
	q := listQuery(2, 50, "honey")
	if q.Get("page") != "2" || q.Get("limit") != "50" || q.Get("search") != "honey" {
		t.Fatalf("unexpected query: %v", q)
	}

	q = listQuery(0, 0, "")
	if len(q) != 0 {
		t.Fatalf("zero values must be omitted, got %v", q)
	}
}

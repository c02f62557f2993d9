package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simdex/go-lookup-gateway/internal/keystore"
)

// stubKeys serves a canned credential projection.
type stubKeys struct{}

func (stubKeys) Snapshot() map[string]keystore.PublicCredential {
	return map[string]keystore.PublicCredential{
		"DEMO": {Name: "Demo User", Expiry: "2030-03-30", Status: keystore.StatusActive, Quota: 50},
	}
}

func (stubKeys) ActiveCount() int { return 1 }

func serveAdmin(t *testing.T, h *AdminHandlers, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/keys", h.ListKeys)
	r.GET("/lookups", h.ListLookups)
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return w, body
}

func TestListKeys_SecretMismatch(t *testing.T) {
	h := NewAdmin(stubKeys{}, "s3cret", nil)

	for _, target := range []string{"/keys", "/keys?admin=wrong"} {
		w, body := serveAdmin(t, h, target)
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: status=%d, want 403", target, w.Code)
		}
		if body["code"] != ErrCodeForbidden {
			t.Fatalf("%s: code=%v", target, body["code"])
		}
	}
}

func TestListKeys_EmptySecretAlwaysDenies(t *testing.T) {
	h := NewAdmin(stubKeys{}, "", nil)

	// Even an empty admin parameter must not match an unset secret.
	w, _ := serveAdmin(t, h, "/keys?admin=")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", w.Code)
	}
}

func TestListKeys_Authorized(t *testing.T) {
	h := NewAdmin(stubKeys{}, "s3cret", nil)

	w, body := serveAdmin(t, h, "/keys?admin=s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}
	if body["success"] != true {
		t.Fatalf("success=%v", body["success"])
	}
	keys, ok := body["keys"].(map[string]any)
	if !ok {
		t.Fatalf("keys=%v", body["keys"])
	}
	demo, ok := keys["DEMO"].(map[string]any)
	if !ok {
		t.Fatalf("DEMO missing: %v", keys)
	}
	if demo["name"] != "Demo User" || demo["daily_quota"] != float64(50) {
		t.Fatalf("projection: %v", demo)
	}
	for _, counter := range []string{"used_today", "total_used", "remaining_today"} {
		if _, leaked := demo[counter]; leaked {
			t.Fatalf("usage counter %q leaked into admin listing", counter)
		}
	}
}

func TestListLookups_NoDatabase(t *testing.T) {
	h := NewAdmin(stubKeys{}, "s3cret", nil)

	w, body := serveAdmin(t, h, "/lookups?admin=s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}
	rows, ok := body["lookups"].([]any)
	if !ok || len(rows) != 0 {
		t.Fatalf("lookups=%v, want empty array", body["lookups"])
	}
}

func TestHealth(t *testing.T) {
	h := NewAdmin(stubKeys{}, "", nil)

	w, body := serveAdmin(t, h, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}
	if body["status"] != "running" {
		t.Fatalf("status=%v", body["status"])
	}
	if body["active_keys"] != float64(1) {
		t.Fatalf("active_keys=%v", body["active_keys"])
	}
	if _, present := body["lookups_recorded"]; present {
		t.Fatal("lookups_recorded present without a database")
	}
}

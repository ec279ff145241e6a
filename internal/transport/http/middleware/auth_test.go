package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kpm/internal/domain/auth"
)

const testSecret = "mw-test-secret"

func authedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestAuthAttachesUser(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Name: "Admin", Role: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	var got auth.UserContext
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), authedRequest(t, token))

	if !ok || got.UserID != "u1" || got.Role != "admin" {
		t.Fatalf("expected user in context, got %+v ok=%v", got, ok)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("invalid token must not attach a user")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), authedRequest(t, "not-a-token"))
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, ""))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u2", Role: "viewer"}, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	handler := Auth(testSecret)(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for the wrong role")
	})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/5outh/towerlog/internal/auth"
)

func TestAuthMiddlewareBearerToken(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	tokenString, err := tokens.IssueToken("admin", auth.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	var gotClaims auth.UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = auth.GetUserClaims(r.Context())
	})
	handler := AuthMiddleware(tokens, nil)(next)

	req := httptest.NewRequest("GET", "/data/view/states", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotClaims == nil || gotClaims.Subject() != "admin" {
		t.Errorf("Expected admin claims on context, got %v", gotClaims)
	}
}

func TestAuthMiddlewareMissingCredentials(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	handler := AuthMiddleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run without credentials")
	}))

	req := httptest.NewRequest("GET", "/data/view/states", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	handler := AuthMiddleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run with a bad token")
	}))

	req := httptest.NewRequest("GET", "/data/view/states", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestRequireAdminBlocksViewer(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run for a viewer")
	}))

	req := httptest.NewRequest("POST", "/admin/update/all", nil)
	ctx := auth.SetUserClaims(req.Context(), &auth.JWTClaims{SubjectID: "v", RoleValue: auth.RoleViewer})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.WithContext(ctx))

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rr.Code)
	}
}

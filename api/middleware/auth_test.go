package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/luxemarket/storefront-backend/pkg/auth"
	"github.com/luxemarket/storefront-backend/pkg/config"
	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "luxemarket", ExpirationMinutes: 60}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

func protectedHandler(t *testing.T, gotUserID, gotRole *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = UserIDFromContext(r.Context())
		*gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: "u1",
		Email:  "user@example.com",
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("MintAccessToken() error = %v", err)
	}

	var userID, role string
	handler := Auth(cfg, testLogger())(protectedHandler(t, &userID, &role))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", w.Code, w.Body.String())
	}
	if userID != "u1" {
		t.Errorf("user id from context = %q, want u1", userID)
	}
	if role != string(enums.UserRoleCustomer) {
		t.Errorf("role from context = %q, want customer", role)
	}
}

func TestAuthRejectsMissingOrBadTokens(t *testing.T) {
	cfg := testJWTConfig()
	var userID, role string
	handler := Auth(cfg, testLogger())(protectedHandler(t, &userID, &role))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	var userID, role string
	handler := RequireRole(string(enums.UserRoleAdmin), testLogger())(protectedHandler(t, &userID, &role))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleCustomer)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer hitting admin route: status = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleAdmin)))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin hitting admin route: status = %d, want 204", w.Code)
	}
}

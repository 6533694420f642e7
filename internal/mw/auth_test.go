package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	validToken := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expiredToken := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"exp":     jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongKeyToken := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUser   string
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK, "u1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized, ""},
		{"wrong signing key", "Bearer " + wrongKeyToken, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = r.Context().Value(UserCtxKey).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/purchases", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}
			if gotUser != tt.expectedUser {
				t.Errorf("user in context = %q, want %q", gotUser, tt.expectedUser)
			}
		})
	}
}

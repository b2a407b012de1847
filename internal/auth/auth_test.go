package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndValidateToken(t *testing.T) {
	tokenStr, err := GenerateToken(testSecret, "user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(testSecret, tokenStr)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-42")
	}
}

func TestGenerateToken_ShortSecret(t *testing.T) {
	if _, err := GenerateToken([]byte("too-short"), "user-42", time.Hour); err == nil {
		t.Error("GenerateToken() accepted a secret below the minimum length")
	}
}

func TestValidateToken_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := []byte(strings.Repeat("x", MinSecretLen))
				s, err := GenerateToken(other, "user-42", time.Hour)
				if err != nil {
					t.Fatalf("GenerateToken() unexpected error: %v", err)
				}
				return s
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				s, err := GenerateToken(testSecret, "user-42", -time.Minute)
				if err != nil {
					t.Fatalf("GenerateToken() unexpected error: %v", err)
				}
				return s
			},
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(testSecret, tt.token(t)); err == nil {
				t.Error("ValidateToken() accepted an invalid token")
			}
		})
	}
}

func TestUserID_MissingFromContext(t *testing.T) {
	if got := UserID(t.Context()); got != "" {
		t.Errorf("UserID() = %q, want empty", got)
	}
}

func TestMiddleware(t *testing.T) {
	validToken, err := GenerateToken(testSecret, "user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantUserID: "user-42",
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/paths", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Middleware(testSecret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != tt.wantUserID {
				t.Errorf("user id in context = %q, want %q", gotUserID, tt.wantUserID)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
			}
		})
	}
}

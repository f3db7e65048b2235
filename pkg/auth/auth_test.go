package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.GenerateToken("rahim", RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "rahim", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).GenerateToken("rahim", RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("ilish-2024")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "ilish-2024"))
	assert.False(t, CheckPassword(hash, "rui"))
}

func TestAdminMiddleware(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	okHandler := svc.AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rahim", r.Context().Value(UsernameKey))
		w.WriteHeader(http.StatusNoContent)
	})

	adminToken, _ := svc.GenerateToken("rahim", RoleAdmin)
	customerToken, _ := svc.GenerateToken("karim", "customer")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"non admin", "Bearer " + customerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			okHandler(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/pkg/auth"
)

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("ilish-2024")
	require.NoError(t, err)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	h := NewLoginHandler(Credentials{Username: "admin", PasswordHash: hash}, tokens)

	resp, err := h.Handle(context.Background(), LoginCommand{Username: " admin ", Password: "ilish-2024"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, resp.Role)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestLogin_Rejected(t *testing.T) {
	hash, err := auth.HashPassword("ilish-2024")
	require.NoError(t, err)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	cases := []struct {
		name  string
		creds Credentials
		cmd   LoginCommand
	}{
		{"wrong password", Credentials{"admin", hash}, LoginCommand{"admin", "rui"}},
		{"wrong username", Credentials{"admin", hash}, LoginCommand{"root", "ilish-2024"}},
		{"empty password", Credentials{"admin", hash}, LoginCommand{"admin", ""}},
		{"login disabled", Credentials{"admin", ""}, LoginCommand{"admin", "ilish-2024"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoginHandler(tc.creds, tokens).Handle(context.Background(), tc.cmd)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

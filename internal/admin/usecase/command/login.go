package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/machbazar/storefront/pkg/auth"
	"github.com/machbazar/storefront/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the single admin account, configured at deploy time
type Credentials struct {
	Username     string
	PasswordHash string
}

// LoginCommand represents the command to log the admin in
type LoginCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginHandler handles admin login command
type LoginHandler struct {
	creds  Credentials
	tokens *auth.TokenService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(creds Credentials, tokens *auth.TokenService) *LoginHandler {
	return &LoginHandler{creds: creds, tokens: tokens}
}

// Handle executes the login command. With no password hash configured every
// attempt fails.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*LoginResponse, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if h.creds.PasswordHash == "" ||
		username != h.creds.Username ||
		!auth.CheckPassword(h.creds.PasswordHash, cmd.Password) {
		logger.Warn(ctx).Str("username", username).Msg("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := h.tokens.GenerateToken(username, auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info(ctx).Str("username", username).Msg("Admin logged in")
	return &LoginResponse{
		Token:    token,
		Username: username,
		Role:     auth.RoleAdmin,
	}, nil
}

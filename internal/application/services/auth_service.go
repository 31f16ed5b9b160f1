package services

import (
	"time"

	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles staff authentication for the message-admin endpoints.
type AuthService struct {
	staffPassword string
	jwtSecret     string
	logger        *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(staffPassword, jwtSecret string, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		staffPassword: staffPassword,
		jwtSecret:     jwtSecret,
		logger:        logger,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Authenticate validates the staff password and issues a 24h JWT.
func (a *AuthService) Authenticate(password string) *AuthResult {
	var role string

	if a.staffPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.staffPassword), []byte(password)); err == nil {
			role = "staff"
		}
	}

	// Fallback for plaintext passwords during transition/testing
	if role == "" && a.staffPassword != "" && password == a.staffPassword {
		role = "staff"
	}

	if role == "" {
		a.logger.Auth().Warn("Staff login attempt failed")
		return &AuthResult{
			Success: false,
			Error:   "Invalid credentials",
		}
	}

	claims := jwt.MapClaims{
		"role": role,
		"type": "staff_auth",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := security.SignJWT(claims, a.jwtSecret)
	if err != nil {
		a.logger.Auth().Error("Failed to sign staff token", "error", err.Error())
		return &AuthResult{
			Success: false,
			Error:   "Failed to generate token",
		}
	}

	a.logger.Auth().Info("Staff authenticated", "role", role)
	return &AuthResult{
		Token:   token,
		Role:    role,
		Success: true,
	}
}

// ValidateToken checks a staff JWT and returns its claims.
func (a *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, bool) {
	claims, err := security.ValidateJWT(tokenString, a.jwtSecret)
	if err != nil {
		return nil, false
	}
	if claims["type"] != "staff_auth" {
		return nil, false
	}
	return claims, true
}

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/madwell/signin-backend-go/internal/domain/auth"
	"github.com/madwell/signin-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// dashboardSubject is the token subject; the dashboard has a single shared password, not user accounts.
const dashboardSubject = "dashboard"

type AuthServiceImpl struct {
	jwt.Service
	passwordHash []byte
}

func NewAuthService(jwtService jwt.Service, passwordHash string) auth.AuthService {
	return &AuthServiceImpl{
		Service:      jwtService,
		passwordHash: []byte(passwordHash),
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if len(a.passwordHash) == 0 {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(loginReq.Password)); err != nil {
		slog.Warn("Dashboard login rejected")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(dashboardSubject)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            "Bearer",
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.AccessToken == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(req.AccessToken)
	return nil
}

package usecase

import (
	"context"

	authdto "atix-backend/internal/auth/dto"
)

// AuthUsecase is the application service over accounts and sessions
type AuthUsecase interface {
	// Register creates a local account and signs it in
	Register(req authdto.RegisterRequest) (*authdto.AuthResponse, error)

	// Login signs in a local account
	Login(req authdto.LoginRequest) (*authdto.AuthResponse, error)

	// GoogleSignIn exchanges an OAuth authorization code, creating the
	// account on first sign-in and storing the Gmail refresh token
	GoogleSignIn(ctx context.Context, code string) (*authdto.AuthResponse, error)

	// Refresh rotates a refresh token into a new session token pair
	Refresh(token string) (*authdto.AuthResponse, error)

	// Logout revokes a refresh token
	Logout(token string) error

	// ValidateAccessToken verifies a JWT and returns the user id
	ValidateAccessToken(token string) (string, error)
}

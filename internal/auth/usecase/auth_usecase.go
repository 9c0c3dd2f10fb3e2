package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	authdomain "atix-backend/internal/auth/domain"
	authdto "atix-backend/internal/auth/dto"
	"atix-backend/internal/auth/repository"
	"atix-backend/pkg/config"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo      repository.UserRepository
	oauthConfig   *oauth2.Config
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"openid", "email", "profile",
				"https://www.googleapis.com/auth/gmail.readonly",
			},
		},
		jwtSecret:     cfg.JWTSecret,
		accessExpiry:  cfg.JWTAccessExpiry,
		refreshExpiry: cfg.JWTRefreshExpiry,
	}
}

func (u *authUsecase) Register(req authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailTaken
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Provider: "local",
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}
	return u.issueSession(user)
}

func (u *authUsecase) Login(req authdto.LoginRequest) (*authdto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" || !checkPasswordHash(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}
	return u.issueSession(user)
}

// GoogleSignIn exchanges the authorization code, creating the account on
// first sign-in. Google only returns a refresh token on the first consent,
// so an empty one never overwrites a stored one.
func (u *authUsecase) GoogleSignIn(ctx context.Context, code string) (*authdto.AuthResponse, error) {
	token, err := u.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(u.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	user, err := u.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &authdomain.User{
			Email:              info.Email,
			Name:               info.Name,
			AvatarURL:          info.Picture,
			Provider:           "google",
			GoogleRefreshToken: token.RefreshToken,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		user.Name = info.Name
		user.AvatarURL = info.Picture
		if token.RefreshToken != "" {
			user.GoogleRefreshToken = token.RefreshToken
		}
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	if user.GoogleRefreshToken == "" {
		log.Printf("[Auth] user %s signed in with Google but no refresh token was granted", user.ID)
	}
	return u.issueSession(user)
}

func (u *authUsecase) Refresh(token string) (*authdto.AuthResponse, error) {
	stored, err := u.userRepo.FindRefreshToken(token)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}

	// rotation: the old token is single use
	if err := u.userRepo.RevokeRefreshToken(token); err != nil {
		return nil, err
	}
	return u.issueSession(user)
}

func (u *authUsecase) Logout(token string) error {
	return u.userRepo.RevokeRefreshToken(token)
}

func (u *authUsecase) issueSession(user *authdomain.User) (*authdto.AuthResponse, error) {
	access, err := u.generateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := newRefreshTokenString()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := u.userRepo.CreateRefreshToken(&authdomain.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(u.refreshExpiry),
	}); err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

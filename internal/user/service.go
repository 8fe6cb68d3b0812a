package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
)

var (
	ErrUsernameTaken       = errors.New("username already taken")
	ErrPhoneNumberTaken    = errors.New("phone number already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo      Repository
	tokens    auth.RefreshTokenRepository
	jwtSecret string
}

func NewService(repo Repository, tokens auth.RefreshTokenRepository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		tokens:    tokens,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	taken, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.PhoneNumberExists(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPhoneNumberTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.Username, req.PhoneNumber, passwordHash, []string{auth.RoleMember})
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if stored.Expired() {
		_ = s.tokens.DeleteByToken(ctx, refreshToken)
		return nil, ErrRefreshTokenExpired
	}

	u, err := s.repo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Rotate: the presented token is spent either way.
	if err := s.tokens.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.tokens.FindByToken(ctx, refreshToken); err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokens.DeleteByToken(ctx, refreshToken)
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) issueTokens(ctx context.Context, u *User) (*TokenResponse, error) {
	accessToken, err := auth.GenerateAccessToken(u.ID, u.Username, u.Roles, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshValue, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}

	// One live refresh token per user.
	if err := s.tokens.DeleteByUser(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, u.ID, refreshValue, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
	}, nil
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

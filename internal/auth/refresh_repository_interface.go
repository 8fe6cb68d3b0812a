package auth

import (
	"context"
	"time"
)

type RefreshToken struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Token      string    `db:"token"`
	ExpiryDate time.Time `db:"expiry_date"`
}

func (t *RefreshToken) Expired() bool {
	return time.Now().After(t.ExpiryDate)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, userID int64, token string, expiry time.Time) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

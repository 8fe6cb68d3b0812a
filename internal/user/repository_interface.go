package user

import "context"

type Repository interface {
	Create(ctx context.Context, username, phoneNumber, passwordHash string, roles []string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error)
}

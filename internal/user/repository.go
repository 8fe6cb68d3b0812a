package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, phoneNumber, passwordHash string, roles []string) (*User, error) {
	query := `
		INSERT INTO users (username, phone_number, password_hash, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, phone_number, password_hash, roles, deleted
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, username, phoneNumber, passwordHash, pq.StringArray(roles))
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, username, phone_number, password_hash, roles, deleted
		FROM users
		WHERE id = $1 AND deleted = FALSE
	`

	var u User
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, phone_number, password_hash, roles, deleted
		FROM users
		WHERE username = $1 AND deleted = FALSE
	`

	var u User
	if err := r.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*User, error) {
	query := `
		SELECT id, username, phone_number, password_hash, roles, deleted
		FROM users
		WHERE phone_number = $1 AND deleted = FALSE
	`

	var u User
	if err := r.db.GetContext(ctx, &u, query, phoneNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phoneNumber); err != nil {
		return false, err
	}

	return exists, nil
}

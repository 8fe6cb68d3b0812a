package surface

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrSurfaceTypeNotFound = errors.New("surface type not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, pricePerMinute float64) (*SurfaceType, error) {
	query := `
		INSERT INTO surface_types (name, price_per_minute)
		VALUES ($1, $2)
		RETURNING id, name, price_per_minute, deleted
	`

	var st SurfaceType
	if err := r.db.GetContext(ctx, &st, query, name, pricePerMinute); err != nil {
		return nil, err
	}

	return &st, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*SurfaceType, error) {
	query := `
		SELECT id, name, price_per_minute, deleted
		FROM surface_types
		WHERE id = $1 AND deleted = FALSE
	`

	var st SurfaceType
	if err := r.db.GetContext(ctx, &st, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSurfaceTypeNotFound
		}
		return nil, err
	}

	return &st, nil
}

func (r *repository) FindAll(ctx context.Context) ([]SurfaceType, error) {
	query := `
		SELECT id, name, price_per_minute, deleted
		FROM surface_types
		WHERE deleted = FALSE
		ORDER BY id ASC
	`

	var surfaces []SurfaceType
	if err := r.db.SelectContext(ctx, &surfaces, query); err != nil {
		return nil, err
	}

	return surfaces, nil
}

func (r *repository) Update(ctx context.Context, id int64, name string, pricePerMinute float64) (*SurfaceType, error) {
	query := `
		UPDATE surface_types
		SET name = $2, price_per_minute = $3
		WHERE id = $1 AND deleted = FALSE
		RETURNING id, name, price_per_minute, deleted
	`

	var st SurfaceType
	if err := r.db.GetContext(ctx, &st, query, id, name, pricePerMinute); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSurfaceTypeNotFound
		}
		return nil, err
	}

	return &st, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE surface_types
		SET deleted = TRUE
		WHERE id = $1 AND deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSurfaceTypeNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM surface_types WHERE deleted = FALSE`)
	return count, err
}

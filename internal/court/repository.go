package court

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourtNotFound = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const courtColumns = `
	c.id,
	c.name,
	c.surface_type_id,
	c.deleted,
	st.name AS surface_name,
	st.price_per_minute
`

func (r *repository) Create(ctx context.Context, name string, surfaceTypeID int64) (*CourtWithSurface, error) {
	query := `
		INSERT INTO courts (name, surface_type_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := r.db.GetContext(ctx, &id, query, name, surfaceTypeID); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*CourtWithSurface, error) {
	query := `
		SELECT ` + courtColumns + `
		FROM courts c
		JOIN surface_types st ON c.surface_type_id = st.id
		WHERE c.id = $1 AND c.deleted = FALSE
	`

	var cw CourtWithSurface
	if err := r.db.GetContext(ctx, &cw, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	return &cw, nil
}

func (r *repository) FindAll(ctx context.Context) ([]CourtWithSurface, error) {
	query := `
		SELECT ` + courtColumns + `
		FROM courts c
		JOIN surface_types st ON c.surface_type_id = st.id
		WHERE c.deleted = FALSE
		ORDER BY c.id ASC
	`

	var courts []CourtWithSurface
	if err := r.db.SelectContext(ctx, &courts, query); err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *repository) Update(ctx context.Context, id int64, name string, surfaceTypeID int64) (*CourtWithSurface, error) {
	query := `
		UPDATE courts
		SET name = $2, surface_type_id = $3
		WHERE id = $1 AND deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, name, surfaceTypeID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrCourtNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE courts
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
		return ErrCourtNotFound
	}

	return nil
}

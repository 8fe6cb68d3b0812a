package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Metafyzik/tennis-club/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrReservationNotFound = errors.New("reservation not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const detailColumns = `
	r.id,
	r.court_id,
	r.user_id,
	r.start_time,
	r.end_time,
	r.is_doubles,
	r.total_price,
	r.deleted,
	c.name AS court_name,
	st.id AS surface_type_id,
	st.name AS surface_name,
	st.price_per_minute,
	u.username AS owner_username,
	u.phone_number AS owner_phone
`

const detailJoins = `
	FROM reservations r
	JOIN courts c ON r.court_id = c.id
	JOIN surface_types st ON c.surface_type_id = st.id
	JOIN users u ON r.user_id = u.id
`

func (r *repository) FindByID(ctx context.Context, id int64) (*ReservationWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE r.id = $1 AND r.deleted = FALSE
	`

	var detail ReservationWithDetails
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &detail, nil
}

func (r *repository) FindAll(ctx context.Context) ([]ReservationWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE r.deleted = FALSE
		ORDER BY r.start_time ASC
	`

	var details []ReservationWithDetails
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *repository) FindAllByCourt(ctx context.Context, courtID int64) ([]ReservationWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE r.deleted = FALSE AND r.court_id = $1
		ORDER BY r.start_time ASC
	`

	var details []ReservationWithDetails
	if err := r.db.SelectContext(ctx, &details, query, courtID); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string, futureOnly bool) ([]ReservationWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE r.deleted = FALSE AND u.username = $1
	`
	if futureOnly {
		query += " AND r.start_time > NOW()"
	}
	query += " ORDER BY r.start_time ASC"

	var details []ReservationWithDetails
	if err := r.db.SelectContext(ctx, &details, query, username); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *repository) FindByPhoneNumber(ctx context.Context, phoneNumber string, futureOnly bool) ([]ReservationWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE r.deleted = FALSE AND u.phone_number = $1
	`
	if futureOnly {
		query += " AND r.start_time > NOW()"
	}
	query += " ORDER BY r.start_time ASC"

	var details []ReservationWithDetails
	if err := r.db.SelectContext(ctx, &details, query, phoneNumber); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE reservations
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
		return ErrReservationNotFound
	}

	return nil
}

func (r *repository) WithCourtLock(ctx context.Context, courtID int64, fn func(tx TxStore) error) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Serializes writers per court; writers on other courts proceed.
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, courtID); err != nil {
			return err
		}
		return fn(&txStore{tx: tx})
	})
}

type txStore struct {
	tx *sqlx.Tx
}

func (s *txStore) FindOverlapping(ctx context.Context, courtID int64, from, to time.Time) ([]Reservation, error) {
	// Half-open intervals: strict inequalities, so touching slots never
	// conflict.
	query := `
		SELECT id, court_id, user_id, start_time, end_time, is_doubles, total_price, deleted
		FROM reservations
		WHERE deleted = FALSE AND court_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`

	var overlaps []Reservation
	if err := s.tx.SelectContext(ctx, &overlaps, query, courtID, from, to); err != nil {
		return nil, err
	}

	return overlaps, nil
}

func (s *txStore) Insert(ctx context.Context, r *Reservation) (*Reservation, error) {
	query := `
		INSERT INTO reservations (court_id, user_id, start_time, end_time, is_doubles, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, court_id, user_id, start_time, end_time, is_doubles, total_price, deleted
	`

	var created Reservation
	err := s.tx.GetContext(ctx, &created, query,
		r.CourtID, r.UserID, r.StartTime, r.EndTime, r.IsDoubles, r.TotalPrice)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *txStore) Update(ctx context.Context, r *Reservation) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET court_id = $2, start_time = $3, end_time = $4, is_doubles = $5, total_price = $6
		WHERE id = $1 AND deleted = FALSE
		RETURNING id, court_id, user_id, start_time, end_time, is_doubles, total_price, deleted
	`

	var updated Reservation
	err := s.tx.GetContext(ctx, &updated, query,
		r.ID, r.CourtID, r.StartTime, r.EndTime, r.IsDoubles, r.TotalPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &updated, nil
}

package reservation

import (
	"context"
	"time"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*ReservationWithDetails, error)
	FindAll(ctx context.Context) ([]ReservationWithDetails, error)
	FindAllByCourt(ctx context.Context, courtID int64) ([]ReservationWithDetails, error)
	FindByUsername(ctx context.Context, username string, futureOnly bool) ([]ReservationWithDetails, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string, futureOnly bool) ([]ReservationWithDetails, error)
	SoftDelete(ctx context.Context, id int64) error

	// WithCourtLock runs fn inside one transaction holding a per-court
	// advisory lock, making overlap-check-then-write atomic for that court
	// without blocking writes to other courts.
	WithCourtLock(ctx context.Context, courtID int64, fn func(tx TxStore) error) error
}

// TxStore is the slice of the store visible inside the per-court critical
// section.
type TxStore interface {
	FindOverlapping(ctx context.Context, courtID int64, from, to time.Time) ([]Reservation, error)
	Insert(ctx context.Context, r *Reservation) (*Reservation, error)
	Update(ctx context.Context, r *Reservation) (*Reservation, error)
}

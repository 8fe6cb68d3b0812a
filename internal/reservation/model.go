package reservation

import (
	"time"
)

type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	CourtID    int64     `db:"court_id" json:"court_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	IsDoubles  bool      `db:"is_doubles" json:"is_doubles"`
	TotalPrice float64   `db:"total_price" json:"total_price"`
	Deleted    bool      `db:"deleted" json:"-"`
}

// ReservationWithDetails is a reservation row joined with its court, the
// court's surface type and the owning user.
type ReservationWithDetails struct {
	Reservation
	CourtName      string  `db:"court_name"`
	SurfaceTypeID  int64   `db:"surface_type_id"`
	SurfaceName    string  `db:"surface_name"`
	PricePerMinute float64 `db:"price_per_minute"`
	OwnerUsername  string  `db:"owner_username"`
	OwnerPhone     string  `db:"owner_phone"`
}

// Request carries a validated reservation request into the service. The
// caller identity travels separately as an auth.Caller parameter.
type Request struct {
	CourtID   int64
	IsDoubles bool
	Start     time.Time
	End       time.Time
}

type ReservationRequest struct {
	CourtID   int64  `json:"court_id" binding:"required,min=1"`
	IsDoubles *bool  `json:"is_doubles" binding:"required"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
}

package reservation

import "time"

type SurfaceTypeView struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	PricePerMinute float64 `json:"price_per_minute"`
}

type CourtView struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Surface SurfaceTypeView `json:"surface_type"`
}

type OwnerView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
}

// View is the closed set of reservation projections. Both shapes share the
// {id, court, start, end, doubles, price} capability set; only FullView
// carries the owner's identity.
type View interface {
	isReservationView()
}

type SlimView struct {
	ID         int64     `json:"id"`
	Court      CourtView `json:"court"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	IsDoubles  bool      `json:"is_doubles"`
	TotalPrice float64   `json:"total_price"`
}

func (SlimView) isReservationView() {}

type FullView struct {
	SlimView
	Owner OwnerView `json:"owner"`
}

// Project maps a joined reservation row into the view matching the caller's
// privilege. Role branching happens here once; the views themselves hold no
// behavior.
func Project(d *ReservationWithDetails, admin bool) View {
	slim := SlimView{
		ID: d.ID,
		Court: CourtView{
			ID:   d.CourtID,
			Name: d.CourtName,
			Surface: SurfaceTypeView{
				ID:             d.SurfaceTypeID,
				Name:           d.SurfaceName,
				PricePerMinute: d.PricePerMinute,
			},
		},
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		IsDoubles:  d.IsDoubles,
		TotalPrice: d.TotalPrice,
	}

	if !admin {
		return slim
	}

	return FullView{
		SlimView: slim,
		Owner: OwnerView{
			ID:          d.UserID,
			Username:    d.OwnerUsername,
			PhoneNumber: d.OwnerPhone,
		},
	}
}

func ProjectAll(details []ReservationWithDetails, admin bool) []View {
	views := make([]View, 0, len(details))
	for i := range details {
		views = append(views, Project(&details[i], admin))
	}
	return views
}

package court

type Court struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	SurfaceTypeID int64  `db:"surface_type_id" json:"surface_type_id"`
	Deleted       bool   `db:"deleted" json:"-"`
}

// CourtWithSurface is a court row joined with its (non-deleted) surface type.
type CourtWithSurface struct {
	Court
	SurfaceName    string  `db:"surface_name" json:"surface_name"`
	PricePerMinute float64 `db:"price_per_minute" json:"price_per_minute"`
}

type CourtRequest struct {
	Name          string `json:"name" binding:"required"`
	SurfaceTypeID int64  `json:"surface_type_id" binding:"required,min=1"`
}

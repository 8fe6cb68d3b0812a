package surface

type SurfaceType struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	PricePerMinute float64 `db:"price_per_minute" json:"price_per_minute"`
	Deleted        bool    `db:"deleted" json:"-"`
}

type SurfaceTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	PricePerMinute float64 `json:"price_per_minute" binding:"required,gt=0"`
}

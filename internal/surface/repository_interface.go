package surface

import "context"

type Repository interface {
	Create(ctx context.Context, name string, pricePerMinute float64) (*SurfaceType, error)
	FindByID(ctx context.Context, id int64) (*SurfaceType, error)
	FindAll(ctx context.Context) ([]SurfaceType, error)
	Update(ctx context.Context, id int64, name string, pricePerMinute float64) (*SurfaceType, error)
	SoftDelete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

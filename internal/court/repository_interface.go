package court

import "context"

type Repository interface {
	Create(ctx context.Context, name string, surfaceTypeID int64) (*CourtWithSurface, error)
	FindByID(ctx context.Context, id int64) (*CourtWithSurface, error)
	FindAll(ctx context.Context) ([]CourtWithSurface, error)
	Update(ctx context.Context, id int64, name string, surfaceTypeID int64) (*CourtWithSurface, error)
	SoftDelete(ctx context.Context, id int64) error
}

package surface

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, req SurfaceTypeRequest) (*SurfaceType, error)
	GetByID(ctx context.Context, id int64) (*SurfaceType, error)
	GetAll(ctx context.Context) ([]SurfaceType, error)
	Update(ctx context.Context, id int64, req SurfaceTypeRequest) (*SurfaceType, error)
	SoftDelete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req SurfaceTypeRequest) (*SurfaceType, error) {
	return s.repo.Create(ctx, req.Name, req.PricePerMinute)
}

func (s *service) GetByID(ctx context.Context, id int64) (*SurfaceType, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]SurfaceType, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req SurfaceTypeRequest) (*SurfaceType, error) {
	return s.repo.Update(ctx, id, req.Name, req.PricePerMinute)
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

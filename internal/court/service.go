package court

import (
	"context"

	"github.com/Metafyzik/tennis-club/internal/surface"
)

type Service interface {
	Create(ctx context.Context, req CourtRequest) (*CourtWithSurface, error)
	GetByID(ctx context.Context, id int64) (*CourtWithSurface, error)
	GetAll(ctx context.Context) ([]CourtWithSurface, error)
	Update(ctx context.Context, id int64, req CourtRequest) (*CourtWithSurface, error)
	SoftDelete(ctx context.Context, id int64) error
}

type service struct {
	repo        Repository
	surfaceRepo surface.Repository
}

func NewService(repo Repository, surfaceRepo surface.Repository) Service {
	return &service{
		repo:        repo,
		surfaceRepo: surfaceRepo,
	}
}

func (s *service) Create(ctx context.Context, req CourtRequest) (*CourtWithSurface, error) {
	if _, err := s.surfaceRepo.FindByID(ctx, req.SurfaceTypeID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.Name, req.SurfaceTypeID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*CourtWithSurface, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]CourtWithSurface, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req CourtRequest) (*CourtWithSurface, error) {
	if _, err := s.surfaceRepo.FindByID(ctx, req.SurfaceTypeID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, req.Name, req.SurfaceTypeID)
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

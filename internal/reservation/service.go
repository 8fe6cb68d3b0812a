package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/logger"
	"github.com/Metafyzik/tennis-club/internal/metrics"
	"github.com/Metafyzik/tennis-club/internal/user"

	"github.com/lib/pq"
)

var (
	ErrForbidden        = errors.New("reservation belongs to another user")
	ErrPastReservation  = errors.New("past reservations cannot be modified")
	ErrTransientFailure = errors.New("reservation store temporarily unavailable")
)

const retryBackoff = 50 * time.Millisecond

type Service interface {
	Create(ctx context.Context, caller auth.Caller, req Request) (View, error)
	Update(ctx context.Context, caller auth.Caller, id int64, req Request) (View, error)
	SoftDelete(ctx context.Context, caller auth.Caller, id int64) error
	GetByID(ctx context.Context, caller auth.Caller, id int64) (View, error)
	GetAll(ctx context.Context, caller auth.Caller) ([]View, error)
	GetByCourt(ctx context.Context, caller auth.Caller, courtID int64) ([]View, error)
	GetForCaller(ctx context.Context, caller auth.Caller, futureOnly bool) ([]View, error)
	GetByPhoneNumber(ctx context.Context, caller auth.Caller, phoneNumber string, futureOnly bool) ([]View, error)
}

type service struct {
	repo              Repository
	courtRepo         court.Repository
	userRepo          user.Repository
	doublesMultiplier float64
}

func NewService(repo Repository, courtRepo court.Repository, userRepo user.Repository, doublesMultiplier float64) Service {
	return &service{
		repo:              repo,
		courtRepo:         courtRepo,
		userRepo:          userRepo,
		doublesMultiplier: doublesMultiplier,
	}
}

func (s *service) Create(ctx context.Context, caller auth.Caller, req Request) (View, error) {
	if err := ValidateInterval(req.Start, req.End); err != nil {
		return nil, err
	}

	crt, err := s.courtRepo.FindByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	price, err := Quote(req.Start, req.End, crt.PricePerMinute, req.IsDoubles, s.doublesMultiplier)
	if err != nil {
		return nil, err
	}

	var created *Reservation
	err = s.withRetry(ctx, func() error {
		return s.repo.WithCourtLock(ctx, crt.ID, func(tx TxStore) error {
			overlaps, err := tx.FindOverlapping(ctx, crt.ID, req.Start, req.End)
			if err != nil {
				return err
			}
			if err := RejectIfOverlapping(overlaps); err != nil {
				return err
			}

			created, err = tx.Insert(ctx, &Reservation{
				CourtID:    crt.ID,
				UserID:     caller.UserID,
				StartTime:  req.Start,
				EndTime:    req.End,
				IsDoubles:  req.IsDoubles,
				TotalPrice: price,
			})
			return err
		})
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			metrics.RecordReservationConflict()
		}
		return nil, err
	}

	metrics.RecordReservationCreated()
	logger.Info("reservation created",
		"reservation_id", created.ID, "court_id", crt.ID, "user_id", caller.UserID)

	detail, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	return Project(detail, caller.IsAdmin()), nil
}

func (s *service) Update(ctx context.Context, caller auth.Caller, id int64, req Request) (View, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	if existing.StartTime.Before(time.Now()) {
		return nil, ErrPastReservation
	}

	if err := ValidateInterval(req.Start, req.End); err != nil {
		return nil, err
	}

	crt, err := s.courtRepo.FindByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	price, err := Quote(req.Start, req.End, crt.PricePerMinute, req.IsDoubles, s.doublesMultiplier)
	if err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func() error {
		return s.repo.WithCourtLock(ctx, crt.ID, func(tx TxStore) error {
			overlaps, err := tx.FindOverlapping(ctx, crt.ID, req.Start, req.End)
			if err != nil {
				return err
			}
			if err := RejectIfOverlapping(ExcludeSelf(overlaps, id)); err != nil {
				return err
			}

			_, err = tx.Update(ctx, &Reservation{
				ID:         id,
				CourtID:    crt.ID,
				StartTime:  req.Start,
				EndTime:    req.End,
				IsDoubles:  req.IsDoubles,
				TotalPrice: price,
			})
			return err
		})
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			metrics.RecordReservationConflict()
		}
		return nil, err
	}

	logger.Info("reservation updated", "reservation_id", id, "court_id", crt.ID)

	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return Project(detail, caller.IsAdmin()), nil
}

func (s *service) SoftDelete(ctx context.Context, caller auth.Caller, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != caller.UserID {
		return ErrForbidden
	}
	if existing.StartTime.Before(time.Now()) {
		return ErrPastReservation
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	metrics.RecordReservationCancellation()
	logger.Info("reservation cancelled", "reservation_id", id, "user_id", caller.UserID)
	return nil
}

func (s *service) GetByID(ctx context.Context, caller auth.Caller, id int64) (View, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Project(detail, caller.IsAdmin()), nil
}

func (s *service) GetAll(ctx context.Context, caller auth.Caller) ([]View, error) {
	details, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectAll(details, caller.IsAdmin()), nil
}

func (s *service) GetByCourt(ctx context.Context, caller auth.Caller, courtID int64) ([]View, error) {
	if _, err := s.courtRepo.FindByID(ctx, courtID); err != nil {
		return nil, err
	}

	details, err := s.repo.FindAllByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	return ProjectAll(details, caller.IsAdmin()), nil
}

func (s *service) GetForCaller(ctx context.Context, caller auth.Caller, futureOnly bool) ([]View, error) {
	details, err := s.repo.FindByUsername(ctx, caller.Username, futureOnly)
	if err != nil {
		return nil, err
	}
	return ProjectAll(details, caller.IsAdmin()), nil
}

func (s *service) GetByPhoneNumber(ctx context.Context, caller auth.Caller, phoneNumber string, futureOnly bool) ([]View, error) {
	if _, err := s.userRepo.FindByPhoneNumber(ctx, phoneNumber); err != nil {
		return nil, err
	}

	details, err := s.repo.FindByPhoneNumber(ctx, phoneNumber, futureOnly)
	if err != nil {
		return nil, err
	}
	return ProjectAll(details, caller.IsAdmin()), nil
}

// withRetry reruns fn once after a transient store failure. Domain errors
// (conflicts, not-found) pass through untouched.
func (s *service) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !isTransient(err) {
		return err
	}

	metrics.RecordTransientRetry()
	logger.Error("transient store failure, retrying", "error", err)

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := fn(); err != nil {
		if isTransient(err) {
			return ErrTransientFailure
		}
		return err
	}
	return nil
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03":
			// serialization failure, deadlock, lock not available
			return true
		}
	}
	return false
}

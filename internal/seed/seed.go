package seed

import (
	"context"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/logger"
	"github.com/Metafyzik/tennis-club/internal/reservation"
	"github.com/Metafyzik/tennis-club/internal/surface"
	"github.com/Metafyzik/tennis-club/internal/user"
)

// Seeder populates an empty database with demo data: two surface types,
// four courts, a few users and a couple of upcoming reservations.
type Seeder struct {
	surfaces     surface.Repository
	courts       court.Repository
	users        user.Repository
	reservations reservation.Service
}

func New(surfaces surface.Repository, courts court.Repository, users user.Repository, reservations reservation.Service) *Seeder {
	return &Seeder{
		surfaces:     surfaces,
		courts:       courts,
		users:        users,
		reservations: reservations,
	}
}

// Run is a no-op when surface types already exist, so restarts with seeding
// enabled stay idempotent.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.surfaces.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("seed skipped, data already present")
		return nil
	}

	clay, err := s.surfaces.Create(ctx, "clay", 0.5)
	if err != nil {
		return err
	}
	grass, err := s.surfaces.Create(ctx, "grass", 0.7)
	if err != nil {
		return err
	}

	courtSurfaces := []int64{clay.ID, clay.ID, grass.ID, grass.ID}
	courtNames := []string{"Court One", "Court Two", "Court Three", "Court Four"}

	courts := make([]*court.CourtWithSurface, 0, len(courtNames))
	for i, name := range courtNames {
		c, err := s.courts.Create(ctx, name, courtSurfaces[i])
		if err != nil {
			return err
		}
		courts = append(courts, c)
	}

	alice, err := s.createUser(ctx, "Alice", "1234567890", "password", []string{auth.RoleAdmin, auth.RoleMember})
	if err != nil {
		return err
	}
	bob, err := s.createUser(ctx, "Bob", "0987654321", "password", []string{auth.RoleMember})
	if err != nil {
		return err
	}
	if _, err := s.createUser(ctx, "Carol", "0123456789", "password", []string{auth.RoleMember}); err != nil {
		return err
	}

	tomorrow := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	demos := []struct {
		owner *user.User
		req   reservation.Request
	}{
		{bob, reservation.Request{CourtID: courts[0].ID, Start: tomorrow, End: tomorrow.Add(time.Hour)}},
		{alice, reservation.Request{CourtID: courts[0].ID, Start: tomorrow.Add(time.Hour), End: tomorrow.Add(2 * time.Hour)}},
		{bob, reservation.Request{CourtID: courts[2].ID, IsDoubles: true, Start: tomorrow, End: tomorrow.Add(90 * time.Minute)}},
	}

	for _, demo := range demos {
		caller := auth.Caller{UserID: demo.owner.ID, Username: demo.owner.Username, Roles: demo.owner.Roles}
		if _, err := s.reservations.Create(ctx, caller, demo.req); err != nil {
			return err
		}
	}

	logger.Info("seed data created",
		"surfaces", 2, "courts", len(courts), "users", 3, "reservations", len(demos))
	return nil
}

func (s *Seeder) createUser(ctx context.Context, username, phoneNumber, password string, roles []string) (*user.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, username, phoneNumber, hash, roles)
}

package reservation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/logger"
	"github.com/Metafyzik/tennis-club/internal/user"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockReservationRepo struct {
	mock.Mock
	tx *MockTxStore
}

func (m *MockReservationRepo) FindByID(ctx context.Context, id int64) (*ReservationWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) FindAll(ctx context.Context) ([]ReservationWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) FindAllByCourt(ctx context.Context, courtID int64) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) FindByUsername(ctx context.Context, username string, futureOnly bool) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, username, futureOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) FindByPhoneNumber(ctx context.Context, phoneNumber string, futureOnly bool) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, phoneNumber, futureOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationRepo) WithCourtLock(ctx context.Context, courtID int64, fn func(tx TxStore) error) error {
	args := m.Called(ctx, courtID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.tx)
}

type MockTxStore struct{ mock.Mock }

func (m *MockTxStore) FindOverlapping(ctx context.Context, courtID int64, from, to time.Time) ([]Reservation, error) {
	args := m.Called(ctx, courtID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockTxStore) Insert(ctx context.Context, r *Reservation) (*Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockTxStore) Update(ctx context.Context, r *Reservation) (*Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

type MockCourtRepo struct{ mock.Mock }

func (m *MockCourtRepo) Create(ctx context.Context, name string, surfaceTypeID int64) (*court.CourtWithSurface, error) {
	args := m.Called(ctx, name, surfaceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.CourtWithSurface), args.Error(1)
}

func (m *MockCourtRepo) FindByID(ctx context.Context, id int64) (*court.CourtWithSurface, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.CourtWithSurface), args.Error(1)
}

func (m *MockCourtRepo) FindAll(ctx context.Context) ([]court.CourtWithSurface, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]court.CourtWithSurface), args.Error(1)
}

func (m *MockCourtRepo) Update(ctx context.Context, id int64, name string, surfaceTypeID int64) (*court.CourtWithSurface, error) {
	args := m.Called(ctx, id, name, surfaceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.CourtWithSurface), args.Error(1)
}

func (m *MockCourtRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, username, phoneNumber, passwordHash string, roles []string) (*user.User, error) {
	args := m.Called(ctx, username, phoneNumber, passwordHash, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*user.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Bool(0), args.Error(1)
}

var (
	member = auth.Caller{UserID: 2, Username: "Bob", Roles: []string{auth.RoleMember}}
	admin  = auth.Caller{UserID: 1, Username: "Alice", Roles: []string{auth.RoleAdmin}}

	clayCourt = &court.CourtWithSurface{
		Court:          court.Court{ID: 1, Name: "Court One", SurfaceTypeID: 1},
		SurfaceName:    "clay",
		PricePerMinute: 0.5,
	}
)

func newTestService(repo *MockReservationRepo, courts *MockCourtRepo, users *MockUserRepo) Service {
	return NewService(repo, courts, users, 1.5)
}

func futureSlot() (time.Time, time.Time) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	return start, start.Add(time.Hour)
}

func detailFor(r Reservation) *ReservationWithDetails {
	return &ReservationWithDetails{
		Reservation:    r,
		CourtName:      clayCourt.Name,
		SurfaceTypeID:  clayCourt.SurfaceTypeID,
		SurfaceName:    clayCourt.SurfaceName,
		PricePerMinute: clayCourt.PricePerMinute,
		OwnerUsername:  "Bob",
		OwnerPhone:     "0987654321",
	}
}

func TestService_CreateSuccess(t *testing.T) {
	start, end := futureSlot()

	tx := new(MockTxStore)
	repo := &MockReservationRepo{tx: tx}
	courts := new(MockCourtRepo)
	users := new(MockUserRepo)

	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(nil)
	tx.On("FindOverlapping", mock.Anything, int64(1), start, end).Return([]Reservation{}, nil)
	tx.On("Insert", mock.Anything, mock.MatchedBy(func(r *Reservation) bool {
		return r.CourtID == 1 && r.UserID == 2 && r.TotalPrice == 30.0
	})).Return(&Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end, TotalPrice: 30.0}, nil)
	repo.On("FindByID", mock.Anything, int64(10)).
		Return(detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end, TotalPrice: 30.0}), nil)

	svc := newTestService(repo, courts, users)
	view, err := svc.Create(context.Background(), member, Request{CourtID: 1, Start: start, End: end})

	require.NoError(t, err)
	slim, ok := view.(SlimView)
	require.True(t, ok, "members get the slim projection")
	assert.Equal(t, int64(10), slim.ID)
	assert.Equal(t, 30.0, slim.TotalPrice)
	tx.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_CreateDoublesPrice(t *testing.T) {
	start, end := futureSlot()

	tx := new(MockTxStore)
	repo := &MockReservationRepo{tx: tx}
	courts := new(MockCourtRepo)

	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(nil)
	tx.On("FindOverlapping", mock.Anything, int64(1), start, end).Return([]Reservation{}, nil)
	tx.On("Insert", mock.Anything, mock.MatchedBy(func(r *Reservation) bool {
		return r.IsDoubles && r.TotalPrice == 45.0
	})).Return(&Reservation{ID: 11, CourtID: 1, UserID: 2, IsDoubles: true, TotalPrice: 45.0}, nil)
	repo.On("FindByID", mock.Anything, int64(11)).
		Return(detailFor(Reservation{ID: 11, CourtID: 1, UserID: 2, IsDoubles: true, TotalPrice: 45.0}), nil)

	svc := newTestService(repo, courts, new(MockUserRepo))
	_, err := svc.Create(context.Background(), member, Request{CourtID: 1, IsDoubles: true, Start: start, End: end})

	require.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestService_CreateConflict(t *testing.T) {
	start, end := futureSlot()

	tx := new(MockTxStore)
	repo := &MockReservationRepo{tx: tx}
	courts := new(MockCourtRepo)

	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(nil)
	tx.On("FindOverlapping", mock.Anything, int64(1), start, end).
		Return([]Reservation{{ID: 5, CourtID: 1, StartTime: start.Add(-30 * time.Minute), EndTime: end.Add(-30 * time.Minute)}}, nil)

	svc := newTestService(repo, courts, new(MockUserRepo))
	_, err := svc.Create(context.Background(), member, Request{CourtID: 1, Start: start, End: end})

	assert.ErrorIs(t, err, ErrSlotConflict)
	tx.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_CreateInvalidInterval(t *testing.T) {
	start, _ := futureSlot()

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))

	_, err := svc.Create(context.Background(), member, Request{CourtID: 1, Start: start, End: start})
	assert.ErrorIs(t, err, ErrInvalidInterval)
	repo.AssertNotCalled(t, "WithCourtLock", mock.Anything, mock.Anything)
}

func TestService_CreateUnknownCourt(t *testing.T) {
	start, end := futureSlot()

	courts := new(MockCourtRepo)
	courts.On("FindByID", mock.Anything, int64(99)).Return(nil, court.ErrCourtNotFound)

	svc := newTestService(&MockReservationRepo{tx: new(MockTxStore)}, courts, new(MockUserRepo))
	_, err := svc.Create(context.Background(), member, Request{CourtID: 99, Start: start, End: end})

	assert.ErrorIs(t, err, court.ErrCourtNotFound)
}

func TestService_UpdateExcludesSelf(t *testing.T) {
	start, end := futureSlot()
	newStart, newEnd := start.Add(time.Hour), end.Add(time.Hour)
	existing := Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end}

	tx := new(MockTxStore)
	repo := &MockReservationRepo{tx: tx}
	courts := new(MockCourtRepo)

	repo.On("FindByID", mock.Anything, int64(10)).Return(detailFor(existing), nil).Once()
	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(nil)
	// Only the reservation itself overlaps the new slot, so the update goes
	// through.
	tx.On("FindOverlapping", mock.Anything, int64(1), newStart, newEnd).
		Return([]Reservation{{ID: 10, CourtID: 1, StartTime: start, EndTime: end}}, nil)
	tx.On("Update", mock.Anything, mock.MatchedBy(func(r *Reservation) bool {
		return r.ID == 10 && r.StartTime.Equal(newStart)
	})).Return(&Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: newStart, EndTime: newEnd, TotalPrice: 30.0}, nil)
	repo.On("FindByID", mock.Anything, int64(10)).
		Return(detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: newStart, EndTime: newEnd, TotalPrice: 30.0}), nil)

	svc := newTestService(repo, courts, new(MockUserRepo))
	view, err := svc.Update(context.Background(), member, 10, Request{CourtID: 1, Start: newStart, End: newEnd})

	require.NoError(t, err)
	slim, ok := view.(SlimView)
	require.True(t, ok)
	assert.True(t, slim.StartTime.Equal(newStart))
	tx.AssertExpectations(t)
}

func TestService_UpdateForbiddenForNonOwner(t *testing.T) {
	start, end := futureSlot()
	existing := Reservation{ID: 10, CourtID: 1, UserID: 7, StartTime: start, EndTime: end}

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	repo.On("FindByID", mock.Anything, int64(10)).Return(detailFor(existing), nil)

	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
	_, err := svc.Update(context.Background(), member, 10, Request{CourtID: 1, Start: start, End: end})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "WithCourtLock", mock.Anything, mock.Anything)
}

func TestService_UpdatePastReservation(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	existing := Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: start.Add(time.Hour)}

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	repo.On("FindByID", mock.Anything, int64(10)).Return(detailFor(existing), nil)

	newStart, newEnd := futureSlot()
	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
	_, err := svc.Update(context.Background(), member, 10, Request{CourtID: 1, Start: newStart, End: newEnd})

	assert.ErrorIs(t, err, ErrPastReservation)
}

func TestService_SoftDelete(t *testing.T) {
	start, end := futureSlot()
	existing := Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end}

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	repo.On("FindByID", mock.Anything, int64(10)).Return(detailFor(existing), nil)
	repo.On("SoftDelete", mock.Anything, int64(10)).Return(nil)

	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
	require.NoError(t, svc.SoftDelete(context.Background(), member, 10))
	repo.AssertExpectations(t)
}

func TestService_SoftDeleteGuards(t *testing.T) {
	start, end := futureSlot()

	t.Run("non-owner", func(t *testing.T) {
		repo := &MockReservationRepo{tx: new(MockTxStore)}
		repo.On("FindByID", mock.Anything, int64(10)).
			Return(detailFor(Reservation{ID: 10, CourtID: 1, UserID: 7, StartTime: start, EndTime: end}), nil)

		svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
		assert.ErrorIs(t, svc.SoftDelete(context.Background(), member, 10), ErrForbidden)
	})

	t.Run("already started", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		repo := &MockReservationRepo{tx: new(MockTxStore)}
		repo.On("FindByID", mock.Anything, int64(10)).
			Return(detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: past, EndTime: past.Add(time.Hour)}), nil)

		svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
		assert.ErrorIs(t, svc.SoftDelete(context.Background(), member, 10), ErrPastReservation)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &MockReservationRepo{tx: new(MockTxStore)}
		repo.On("FindByID", mock.Anything, int64(10)).Return(nil, ErrReservationNotFound)

		svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
		assert.ErrorIs(t, svc.SoftDelete(context.Background(), member, 10), ErrReservationNotFound)
	})
}

func TestService_ProjectionByRole(t *testing.T) {
	start, end := futureSlot()
	detail := detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end, TotalPrice: 30.0})

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	repo.On("FindByID", mock.Anything, int64(10)).Return(detail, nil)

	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))

	memberView, err := svc.GetByID(context.Background(), member, 10)
	require.NoError(t, err)
	_, isSlim := memberView.(SlimView)
	assert.True(t, isSlim)

	adminView, err := svc.GetByID(context.Background(), admin, 10)
	require.NoError(t, err)
	full, isFull := adminView.(FullView)
	require.True(t, isFull)
	assert.Equal(t, "Bob", full.Owner.Username)
	assert.Equal(t, "0987654321", full.Owner.PhoneNumber)
}

func TestService_GetByPhoneNumber(t *testing.T) {
	start, end := futureSlot()

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	users := new(MockUserRepo)

	users.On("FindByPhoneNumber", mock.Anything, "0987654321").
		Return(&user.User{ID: 2, Username: "Bob", PhoneNumber: "0987654321"}, nil)
	repo.On("FindByPhoneNumber", mock.Anything, "0987654321", true).
		Return([]ReservationWithDetails{*detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end})}, nil)

	svc := newTestService(repo, new(MockCourtRepo), users)
	views, err := svc.GetByPhoneNumber(context.Background(), admin, "0987654321", true)

	require.NoError(t, err)
	require.Len(t, views, 1)
	_, isFull := views[0].(FullView)
	assert.True(t, isFull)
}

func TestService_GetByPhoneNumberUnknownUser(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByPhoneNumber", mock.Anything, "0000000000").Return(nil, user.ErrUserNotFound)

	svc := newTestService(&MockReservationRepo{tx: new(MockTxStore)}, new(MockCourtRepo), users)
	_, err := svc.GetByPhoneNumber(context.Background(), admin, "0000000000", false)

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestService_CreateRetriesTransientFailure(t *testing.T) {
	start, end := futureSlot()

	tx := new(MockTxStore)
	repo := &MockReservationRepo{tx: tx}
	courts := new(MockCourtRepo)

	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(&pq.Error{Code: "40001"}).Once()
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(nil).Once()
	tx.On("FindOverlapping", mock.Anything, int64(1), start, end).Return([]Reservation{}, nil)
	tx.On("Insert", mock.Anything, mock.Anything).
		Return(&Reservation{ID: 12, CourtID: 1, UserID: 2, StartTime: start, EndTime: end, TotalPrice: 30.0}, nil)
	repo.On("FindByID", mock.Anything, int64(12)).
		Return(detailFor(Reservation{ID: 12, CourtID: 1, UserID: 2, StartTime: start, EndTime: end, TotalPrice: 30.0}), nil)

	svc := newTestService(repo, courts, new(MockUserRepo))
	_, err := svc.Create(context.Background(), member, Request{CourtID: 1, Start: start, End: end})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_CreateGivesUpAfterRetry(t *testing.T) {
	start, end := futureSlot()

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	courts := new(MockCourtRepo)

	courts.On("FindByID", mock.Anything, int64(1)).Return(clayCourt, nil)
	repo.On("WithCourtLock", mock.Anything, int64(1)).Return(&pq.Error{Code: "55P03"}).Twice()

	svc := newTestService(repo, courts, new(MockUserRepo))
	_, err := svc.Create(context.Background(), member, Request{CourtID: 1, Start: start, End: end})

	assert.ErrorIs(t, err, ErrTransientFailure)
	repo.AssertExpectations(t)
}

func TestService_GetForCaller(t *testing.T) {
	start, end := futureSlot()

	repo := &MockReservationRepo{tx: new(MockTxStore)}
	repo.On("FindByUsername", mock.Anything, "Bob", false).
		Return([]ReservationWithDetails{*detailFor(Reservation{ID: 10, CourtID: 1, UserID: 2, StartTime: start, EndTime: end})}, nil)

	svc := newTestService(repo, new(MockCourtRepo), new(MockUserRepo))
	views, err := svc.GetForCaller(context.Background(), member, false)

	require.NoError(t, err)
	require.Len(t, views, 1)
	_, isSlim := views[0].(SlimView)
	assert.True(t, isSlim)
}

package user

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "phone_number", "password_hash", "roles", "deleted"})
}

func TestCreateUser(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, phone_number, password_hash, roles) VALUES ($1, $2, $3, $4) RETURNING id, username, phone_number, password_hash, roles, deleted")).
		WithArgs("Bob", "0987654321", "hash", sqlmock.AnyArg()).
		WillReturnRows(userRows().AddRow(1, "Bob", "0987654321", "hash", "{MEMBER}", false))

	u, err := repo.Create(context.Background(), "Bob", "0987654321", "hash", []string{"MEMBER"})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, []string{"MEMBER"}, []string(u.Roles))
}

func TestFindByUsername(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, phone_number, password_hash, roles, deleted FROM users WHERE username = $1 AND deleted = FALSE")).
		WithArgs("Bob").
		WillReturnRows(userRows().AddRow(1, "Bob", "0987654321", "hash", "{MEMBER}", false))

	u, err := repo.FindByUsername(context.Background(), "Bob")
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Username)
}

func TestFindByUsernameMissing(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, phone_number, password_hash, roles, deleted FROM users WHERE username = $1 AND deleted = FALSE")).
		WithArgs("nobody").
		WillReturnRows(userRows())

	_, err := repo.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByPhoneNumber(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, phone_number, password_hash, roles, deleted FROM users WHERE phone_number = $1 AND deleted = FALSE")).
		WithArgs("1234567890").
		WillReturnRows(userRows().AddRow(2, "Alice", "1234567890", "hash", "{ADMIN}", false))

	u, err := repo.FindByPhoneNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Username)
}

func TestExistenceChecks(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)")).
		WithArgs("Bob").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.UsernameExists(context.Background(), "Bob")
	require.NoError(t, err)
	require.True(t, taken)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)")).
		WithArgs("555").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err = repo.PhoneNumberExists(context.Background(), "555")
	require.NoError(t, err)
	require.False(t, taken)
}

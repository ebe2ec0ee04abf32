package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/db/dbtest"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
)

func TestPgRepository_Create(t *testing.T) {
	q := &dbtest.Querier{}
	repo := NewPgRepository(q)

	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := repo.Create(context.Background(), domain.User{
		ID:           "user-1",
		Email:        "aunty@example.com",
		PasswordHash: "hash",
		Name:         "Aunty",
		CreatedAt:    createdAt,
	})
	require.NoError(t, err)

	require.Len(t, q.Calls, 1)
	assert.Contains(t, q.Calls[0].SQL, "INSERT INTO users")
	assert.Equal(t, []interface{}{"user-1", "aunty@example.com", "hash", "Aunty", createdAt}, q.Calls[0].Args)
}

func TestPgRepository_Create_DuplicateEmail(t *testing.T) {
	q := &dbtest.Querier{
		ExecFunc: func(string, ...interface{}) (pgconn.CommandTag, error) {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		},
	}
	repo := NewPgRepository(q)

	err := repo.Create(context.Background(), domain.User{ID: "user-1", Email: "aunty@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestPgRepository_Create_DBError(t *testing.T) {
	q := &dbtest.Querier{
		ExecFunc: func(string, ...interface{}) (pgconn.CommandTag, error) {
			return nil, errors.New("db down")
		},
	}
	repo := NewPgRepository(q)

	err := repo.Create(context.Background(), domain.User{ID: "user-1", Email: "aunty@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Contains(t, err.Error(), "failed to create user: db down")
}

func TestPgRepository_FindByEmail(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q := &dbtest.Querier{
		QueryRowFunc: func(sql string, args ...interface{}) pgx.Row {
			return dbtest.Row{Values: []interface{}{"user-1", "aunty@example.com", "hash", "Aunty", createdAt}}
		},
	}
	repo := NewPgRepository(q)

	user, err := repo.FindByEmail(context.Background(), "aunty@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("user-1"), user.ID)
	assert.Equal(t, "aunty@example.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, "Aunty", user.Name)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.Equal(t, []interface{}{"aunty@example.com"}, q.Calls[0].Args)
}

func TestPgRepository_FindByEmail_NotFound(t *testing.T) {
	repo := NewPgRepository(&dbtest.Querier{})

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPgRepository_FindByID_NotFound(t *testing.T) {
	repo := NewPgRepository(&dbtest.Querier{})

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPgRepository_FindByID_DBError(t *testing.T) {
	q := &dbtest.Querier{
		QueryRowFunc: func(string, ...interface{}) pgx.Row {
			return dbtest.Row{Err: errors.New("connection reset")}
		},
	}
	repo := NewPgRepository(q)

	_, err := repo.FindByID(context.Background(), "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "failed to find user by id")
}

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
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/domain"
)

var addedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestPgRepository_Create(t *testing.T) {
	q := &dbtest.Querier{
		QueryRowFunc: func(sql string, args ...interface{}) pgx.Row {
			return dbtest.Row{Values: []interface{}{int64(7), addedAt}}
		},
	}
	repo := NewPgRepository(q)

	item, err := repo.Create(context.Background(), "user-1", "tomato")
	require.NoError(t, err)
	assert.Equal(t, domain.Ingredient{ID: 7, Name: "tomato", UserID: "user-1", DateAdded: addedAt}, item)
	assert.Contains(t, q.Calls[0].SQL, "RETURNING id, date_added")
	assert.Equal(t, []interface{}{"tomato", "user-1"}, q.Calls[0].Args)
}

func TestPgRepository_Create_Duplicate(t *testing.T) {
	q := &dbtest.Querier{
		QueryRowFunc: func(string, ...interface{}) pgx.Row {
			return dbtest.Row{Err: &pgconn.PgError{Code: "23505"}}
		},
	}
	repo := NewPgRepository(q)

	_, err := repo.Create(context.Background(), "user-1", "tomato")
	assert.ErrorIs(t, err, ErrIngredientAlreadyExists)
}

func TestPgRepository_ListByUser(t *testing.T) {
	rows := dbtest.NewRows(
		[]interface{}{int64(1), "tomato", "user-1", addedAt},
		[]interface{}{int64(2), "basil", "user-1", addedAt.Add(time.Minute)},
	)
	q := &dbtest.Querier{
		QueryFunc: func(string, ...interface{}) (pgx.Rows, error) {
			return rows, nil
		},
	}
	repo := NewPgRepository(q)

	items, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "tomato", items[0].Name)
	assert.Equal(t, "basil", items[1].Name)
	assert.Contains(t, q.Calls[0].SQL, "ORDER BY date_added ASC, id ASC")
	assert.True(t, rows.Closed())
}

func TestPgRepository_ListByUser_Empty(t *testing.T) {
	repo := NewPgRepository(&dbtest.Querier{})

	items, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPgRepository_ListByUser_IterationError(t *testing.T) {
	rows := dbtest.NewRows()
	rows.IterErr = errors.New("connection lost")
	q := &dbtest.Querier{
		QueryFunc: func(string, ...interface{}) (pgx.Rows, error) {
			return rows, nil
		},
	}
	repo := NewPgRepository(q)

	_, err := repo.ListByUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
}

func TestPgRepository_FindByID(t *testing.T) {
	q := &dbtest.Querier{
		QueryRowFunc: func(string, ...interface{}) pgx.Row {
			return dbtest.Row{Values: []interface{}{int64(3), "rice", "user-2", addedAt}}
		},
	}
	repo := NewPgRepository(q)

	item, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "user-2", item.UserID)
	assert.Equal(t, []interface{}{int64(3)}, q.Calls[0].Args)
}

func TestPgRepository_FindByID_NotFound(t *testing.T) {
	repo := NewPgRepository(&dbtest.Querier{})

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestPgRepository_Delete(t *testing.T) {
	q := &dbtest.Querier{
		ExecFunc: func(string, ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("DELETE 1"), nil
		},
	}
	repo := NewPgRepository(q)

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.Equal(t, []interface{}{int64(3)}, q.Calls[0].Args)
}

func TestPgRepository_Delete_NoRows(t *testing.T) {
	q := &dbtest.Querier{
		ExecFunc: func(string, ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("DELETE 0"), nil
		},
	}
	repo := NewPgRepository(q)

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrIngredientNotFound)
}

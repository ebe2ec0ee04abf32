package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/migrations"
)

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestRunMigrations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	var gotDB *sql.DB
	var gotDir string
	stubGoose(t, func(_ context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDB = db
		gotDir = dir
		return nil
	})

	require.NoError(t, RunMigrations(context.Background(), sqlDB))
	assert.Same(t, sqlDB, gotDB)
	assert.Equal(t, ".", gotDir)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_WrapsError(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	boom := errors.New("relation already exists")
	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom })

	err = RunMigrations(context.Background(), sqlDB)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to run migrations")
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_user_ingredients.sql",
		"00003_create_revoked_sessions.sql",
	}, files)

	for _, name := range files {
		raw, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "-- +goose Up", name)
		assert.Contains(t, string(raw), "-- +goose Down", name)
	}
}

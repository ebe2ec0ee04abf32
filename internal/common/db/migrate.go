package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/migrations"
)

var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func MigratePool(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(ctx, constants.DBMigrationTimeout)
	defer cancel()

	if err := RunMigrations(ctx, sqlDB); err != nil {
		return err
	}

	log.Info("database migrations applied")
	return nil
}

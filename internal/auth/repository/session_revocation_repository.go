package repository

import (
	"context"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/db"
)

type SessionRevocationRepository interface {
	Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PgSessionRevocationRepository struct {
	db db.Querier
}

func NewPgSessionRevocationRepository(q db.Querier) *PgSessionRevocationRepository {
	return &PgSessionRevocationRepository{db: q}
}

func (r *PgSessionRevocationRepository) Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO revoked_sessions (jti, user_id, expires_at, revoked_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (jti) DO NOTHING`,
		jti,
		userID,
		expiresAt,
	)
	return db.HandleExecError(err, "revoke session", start)
}

func (r *PgSessionRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.db.QueryRow(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM revoked_sessions
			WHERE jti = $1 AND expires_at > NOW()
		)`,
		jti,
	)

	var exists bool
	if err := db.HandleQueryError(row.Scan(&exists), nil, "check revoked session", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgSessionRevocationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.db.Exec(
		ctx,
		`DELETE FROM revoked_sessions WHERE expires_at < NOW()`,
	)
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired revoked sessions", start)
	}
	db.MeasureQueryDuration("delete expired revoked sessions", start)
	return res.RowsAffected(), nil
}

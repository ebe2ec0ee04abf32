package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/db"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/domain"
)

var (
	ErrIngredientNotFound      = errors.New("ingredient not found")
	ErrIngredientAlreadyExists = errors.New("ingredient already exists")
)

type Repository interface {
	Create(ctx context.Context, userID string, name string) (domain.Ingredient, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ingredient, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Ingredient, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	db db.Querier
}

func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{db: q}
}

func (r *PgRepository) Create(ctx context.Context, userID string, name string) (domain.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO user_ingredients (ingredient_name, user_id)
		 VALUES ($1, $2)
		 RETURNING id, date_added`,
		name,
		userID,
	)

	item := domain.Ingredient{Name: name, UserID: userID}
	err := row.Scan(&item.ID, &item.DateAdded)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create ingredient", start)
		return domain.Ingredient{}, ErrIngredientAlreadyExists
	}
	if err := db.HandleQueryError(err, nil, "create ingredient", start); err != nil {
		return domain.Ingredient{}, err
	}
	return item, nil
}

func (r *PgRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.db.Query(
		ctx,
		`SELECT id, ingredient_name, user_id, date_added
		 FROM user_ingredients
		 WHERE user_id = $1
		 ORDER BY date_added ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list ingredients", start)
	}
	defer rows.Close()

	items := make([]domain.Ingredient, 0)
	for rows.Next() {
		var it domain.Ingredient
		if err := rows.Scan(&it.ID, &it.Name, &it.UserID, &it.DateAdded); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan ingredient", start)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "iterate ingredients", start)
	}

	db.MeasureQueryDuration("list ingredients", start)
	return items, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.db.QueryRow(
		ctx,
		`SELECT id, ingredient_name, user_id, date_added FROM user_ingredients WHERE id = $1`,
		int64(id),
	)

	var it domain.Ingredient
	err := row.Scan(&it.ID, &it.Name, &it.UserID, &it.DateAdded)
	if err := db.HandleQueryError(err, ErrIngredientNotFound, "find ingredient by id", start); err != nil {
		return domain.Ingredient{}, err
	}
	return it, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM user_ingredients WHERE id = $1`,
		int64(id),
	)
	if err != nil {
		return db.HandleExecError(err, "delete ingredient", start)
	}
	db.MeasureQueryDuration("delete ingredient", start)
	if tag.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/domain"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/repository"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/observability/metrics"
)

type IngredientService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewIngredientService(repo repository.Repository, log *logger.Logger) *IngredientService {
	return &IngredientService{repo: repo, log: log}
}

func (s *IngredientService) Add(ctx context.Context, userID string, name string) (domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Ingredient{}, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > constants.IngredientNameMaxLength {
		return domain.Ingredient{}, ErrNameTooLong
	}

	item, err := s.repo.Create(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id":    userID,
				"ingredient": name,
				"action":     "ingredient_add_duplicate",
			}).Debug("ingredient already in pantry")
			return domain.Ingredient{}, ErrIngredientExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "ingredient_add_failed",
		}).Errorf("add ingredient failed: %v", err)
		return domain.Ingredient{}, commonerrors.ErrStorage.WithCause(err)
	}

	metrics.IngredientsAdded.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":       userID,
		"ingredient_id": int64(item.ID),
		"action":        "ingredient_added",
	}).Info("ingredient added")
	return item, nil
}

func (s *IngredientService) List(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "ingredient_list_failed",
		}).Errorf("list ingredients failed: %v", err)
		return nil, commonerrors.ErrStorage.WithCause(err)
	}
	if items == nil {
		items = []domain.Ingredient{}
	}
	return items, nil
}

func (s *IngredientService) Remove(ctx context.Context, userID string, id domain.ID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return ErrIngredientNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":       userID,
			"ingredient_id": int64(id),
			"action":        "ingredient_lookup_failed",
		}).Errorf("find ingredient failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	if item.UserID != userID {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":       userID,
			"ingredient_id": int64(id),
			"action":        "ingredient_remove_forbidden",
		}).Warn("attempt to remove another user's ingredient")
		return commonerrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return ErrIngredientNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":       userID,
			"ingredient_id": int64(id),
			"action":        "ingredient_remove_failed",
		}).Errorf("remove ingredient failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	metrics.IngredientsRemoved.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":       userID,
		"ingredient_id": int64(id),
		"action":        "ingredient_removed",
	}).Info("ingredient removed")
	return nil
}

func (s *IngredientService) Names(ctx context.Context, userID string) ([]string, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.Names(items), nil
}

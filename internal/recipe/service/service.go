package service

import (
	"context"
	"errors"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/resilience"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/observability/metrics"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/client"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/domain"
)

const (
	operationFind    = "find"
	operationDetails = "details"

	outcomeLive     = "live"
	outcomeFallback = "fallback"
	outcomeError    = "error"
	outcomeEmpty    = "empty"
	outcomeCanceled = "canceled"
)

type IngredientNames interface {
	Names(ctx context.Context, userID string) ([]string, error)
}

type RecipeService struct {
	ingredients IngredientNames
	client      client.Client
	breaker     *resilience.CircuitBreaker
	configured  bool
	log         *logger.Logger
}

func NewRecipeService(
	ingredients IngredientNames,
	apiClient client.Client,
	cfg config.RecipeAPIConfig,
	log *logger.Logger,
) *RecipeService {
	return &RecipeService{
		ingredients: ingredients,
		client:      apiClient,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  cfg.CircuitBreakerThreshold,
			ResetAfter: cfg.CircuitBreakerReset,
			Name:       "recipe_api",
			IsFailure:  isUnavailable,
			Logger:     log,
		}),
		configured: cfg.Configured(),
		log:        log,
	}
}

func (s *RecipeService) FindRecipes(ctx context.Context, userID string) ([]domain.RecipeSummary, error) {
	names, err := s.ingredients.Names(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		recordLookup(operationFind, outcomeEmpty)
		return []domain.RecipeSummary{}, nil
	}

	if !s.configured {
		recordLookup(operationFind, outcomeError)
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "find_recipes_not_configured",
		}).Error("recipe api key not configured")
		return nil, ErrRecipeAPINotConfigured
	}

	query := names[:min(len(names), constants.RecipeMaxQueryIngredients)]

	var recipes []domain.RecipeSummary
	err = s.breaker.Call(ctx, func(ctx context.Context) error {
		var callErr error
		recipes, callErr = s.client.FindByIngredients(ctx, query)
		return callErr
	})
	if err != nil {
		if isUnavailable(err) {
			recordLookup(operationFind, outcomeFallback)
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "find_recipes_fallback",
			}).Warnf("recipe api unavailable, serving mock recipes: %v", err)
			return domain.MockRecipes(names), nil
		}
		if isCanceled(err) {
			recordLookup(operationFind, outcomeCanceled)
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "find_recipes_canceled",
			}).Infof("find recipes abandoned by caller: %v", err)
			return nil, ErrRecipeLookupFailed.WithCause(err)
		}
		recordLookup(operationFind, outcomeError)
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "find_recipes_failed",
		}).Errorf("find recipes failed: %v", err)
		return nil, ErrRecipeLookupFailed.WithCause(err)
	}

	if recipes == nil {
		recipes = []domain.RecipeSummary{}
	}
	recordLookup(operationFind, outcomeLive)
	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"count":   len(recipes),
		"action":  "find_recipes_success",
	}).Debug("recipes found")
	return recipes, nil
}

func (s *RecipeService) GetRecipeDetails(ctx context.Context, recipeID int64) (domain.RecipeDetail, error) {
	if !s.configured {
		recordLookup(operationDetails, outcomeFallback)
		return domain.MockRecipeDetail(recipeID), nil
	}

	var detail domain.RecipeDetail
	err := s.breaker.Call(ctx, func(ctx context.Context) error {
		var callErr error
		detail, callErr = s.client.RecipeInformation(ctx, recipeID)
		return callErr
	})
	if err != nil {
		if isUnavailable(err) {
			recordLookup(operationDetails, outcomeFallback)
			s.log.WithFields(ctx, logger.Fields{
				"recipe_id": recipeID,
				"action":    "recipe_details_fallback",
			}).Warnf("recipe api unavailable, serving mock details: %v", err)
			return domain.MockRecipeDetail(recipeID), nil
		}
		if isCanceled(err) {
			recordLookup(operationDetails, outcomeCanceled)
			s.log.WithFields(ctx, logger.Fields{
				"recipe_id": recipeID,
				"action":    "recipe_details_canceled",
			}).Infof("recipe details abandoned by caller: %v", err)
			return domain.RecipeDetail{}, ErrRecipeDetailsFailed.WithCause(err)
		}
		recordLookup(operationDetails, outcomeError)
		s.log.WithFields(ctx, logger.Fields{
			"recipe_id": recipeID,
			"action":    "recipe_details_failed",
		}).Errorf("recipe details failed: %v", err)
		return domain.RecipeDetail{}, ErrRecipeDetailsFailed.WithCause(err)
	}

	recordLookup(operationDetails, outcomeLive)
	return detail, nil
}

func isUnavailable(err error) bool {
	if isCanceled(err) {
		return false
	}
	return errors.Is(err, client.ErrUnavailable) || errors.Is(err, commonerrors.ErrCircuitOpen)
}

// isCanceled reports a caller that stopped waiting, not a failing API.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func recordLookup(operation, outcome string) {
	metrics.RecipeLookupsTotal.WithLabelValues(operation, outcome).Inc()
}

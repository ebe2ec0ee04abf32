package service

import (
	"net/http"

	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
)

var (
	ErrRecipeAPINotConfigured = commonerrors.NewDomainError(
		"RECIPE_API_NOT_CONFIGURED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"API key not configured",
	)

	ErrRecipeLookupFailed = commonerrors.NewDomainError(
		"RECIPE_LOOKUP_FAILED",
		commonerrors.CategoryExternal,
		http.StatusInternalServerError,
		"Failed to fetch recipes",
	)

	ErrRecipeDetailsFailed = ErrRecipeLookupFailed.WithMessage("Failed to fetch recipe details")
)

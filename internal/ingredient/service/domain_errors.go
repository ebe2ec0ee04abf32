package service

import (
	"net/http"

	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
)

var (
	ErrNameRequired = commonerrors.NewDomainError(
		"INGREDIENT_NAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Ingredient name is required",
	)

	ErrNameTooLong = commonerrors.ErrValidation.WithMessage("Ingredient name must be at most 100 characters")

	ErrIngredientExists = commonerrors.NewDomainError(
		"INGREDIENT_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Ingredient already in your pantry",
	)

	ErrIngredientNotFound = commonerrors.NewDomainError(
		"INGREDIENT_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"Ingredient not found",
	)
)

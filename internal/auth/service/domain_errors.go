package service

import (
	"net/http"

	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Email already registered",
	)

	ErrValidationEmailRequired   = commonerrors.ErrValidation.WithMessage("email is required")
	ErrValidationEmailFormat     = commonerrors.ErrValidation.WithMessage("email must be a valid email address")
	ErrValidationPasswordLength  = commonerrors.ErrValidation.WithMessage("password must be between 6 and 72 characters")
	ErrValidationNameLength      = commonerrors.ErrValidation.WithMessage("name must be at most 100 characters")
	ErrValidationMissingPassword = commonerrors.ErrValidation.WithMessage("password is required")
)

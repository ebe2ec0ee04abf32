package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
)

var fieldValidator = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(email, password, name string) error {
	if email == "" {
		return ErrValidationEmailRequired
	}
	if len(email) > constants.EmailMaxLength || fieldValidator.Var(email, "email") != nil {
		return ErrValidationEmailFormat
	}
	if utf8.RuneCountInString(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}
	if utf8.RuneCountInString(name) > constants.NameMaxLength {
		return ErrValidationNameLength
	}
	return nil
}

func validateLogin(email, password string) error {
	if email == "" {
		return ErrValidationEmailRequired
	}
	if password == "" {
		return ErrValidationMissingPassword
	}
	return nil
}

package http

import (
	"errors"
	"net/http"

	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
)

var (
	ErrInvalidJSON = commonerrors.NewDomainError(
		CodeInvalidJSON,
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid json",
	)

	ErrRequestTooLarge = commonerrors.NewDomainError(
		CodeRequestTooLarge,
		commonerrors.CategoryValidation,
		http.StatusRequestEntityTooLarge,
		"request body too large",
	)
)

func DecodeRequest(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrRequestTooLarge.WithCause(err)
		}
		return ErrInvalidJSON.WithCause(err)
	}
	return ValidateRequest(v)
}

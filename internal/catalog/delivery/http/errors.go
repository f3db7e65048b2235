package http

import (
	"errors"
	"net/http"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/customize"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

// respondUsecaseError maps usecase errors to status codes. Only unexpected
// errors are logged as errors; the message sent for them is generic.
func respondUsecaseError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errs, ok := domain.AsValidation(err); ok {
		httpx.RespondFieldErrors(w, "Validation failed", errs.Fields())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrDuplicate):
		httpx.RespondError(w, http.StatusConflict, "Product or package id or slug already exists")
	case customize.IsInputError(err):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg(message)
		httpx.RespondError(w, http.StatusInternalServerError, message)
	}
}

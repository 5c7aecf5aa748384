package handler

import (
	"errors"
	"license-store/internal/repository"
	"license-store/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// httpError maps service-layer errors onto HTTP statuses so every handler
// reports the same way.
func httpError(err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Message)
	}

	var credentialErr *service.CredentialError
	if errors.As(err, &credentialErr) {
		return echo.NewHTTPError(http.StatusBadRequest, credentialErr.Error())
	}

	switch {
	case errors.Is(err, service.ErrOrderExists):
		return echo.NewHTTPError(http.StatusConflict, "order already exists in the system")
	case errors.Is(err, service.ErrStateExists):
		return echo.NewHTTPError(http.StatusConflict, "state already exists")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, "warranty already registered for this order")
	case errors.Is(err, service.ErrCodeExhausted):
		// distinct from validation: the caller should retry the operation,
		// not fix the input
		return echo.NewHTTPError(http.StatusServiceUnavailable, "could not generate a unique code, please retry")
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusBadRequest, "payment verification failed")
	case errors.Is(err, repository.ErrOutOfStock):
		return echo.NewHTTPError(http.StatusNotFound, "no license keys available for this product, please contact support")
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	default:
		return err
	}
}

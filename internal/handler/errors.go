package handler

import (
	"errors"
	"net/http"

	"github.com/colleco/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes and structured bodies.
// Rejections carry enough detail (field name or remaining count) for the
// client to correct and retry.
func toHTTPError(err error) error {
	var notAvailable *service.NotAvailableError
	if errors.As(err, &notAvailable) {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"message":   "not available",
			"room_type": notAvailable.RoomType,
			"date":      notAvailable.Date,
			"requested": notAvailable.Requested,
			"available": notAvailable.Available,
		})
	}

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"fields":  validation.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrUnknownRoomType),
		errors.Is(err, service.ErrRoomTypeNotFound),
		errors.Is(err, service.ErrHoldNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDates),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrMissingBooking),
		errors.Is(err, service.ErrInvalidHold):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrHoldRoomTypeMismatch),
		errors.Is(err, service.ErrHoldDatesMismatch),
		errors.Is(err, service.ErrHoldAlreadyUsed),
		errors.Is(err, service.ErrHoldRequired),
		errors.Is(err, service.ErrAlreadyCancelled):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

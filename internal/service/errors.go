package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRoomType      = errors.New("unknown room type")
	ErrInvalidDates         = errors.New("invalid date range")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidCapacity      = errors.New("total capacity must be >= 0")
	ErrInvalidPrice         = errors.New("price must be >= 0")
	ErrRoomTypeNotFound     = errors.New("room type not found")
	ErrHoldNotFound         = errors.New("hold not found")
	ErrInvalidHold          = errors.New("invalid hold")
	ErrHoldRoomTypeMismatch = errors.New("hold room type does not match booking item")
	ErrHoldDatesMismatch    = errors.New("hold dates do not match booking item")
	ErrHoldAlreadyUsed      = errors.New("hold already used")
	ErrHoldRequired         = errors.New("hold required for paid booking")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrMissingBooking       = errors.New("session_id or booking_id is required")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
)

// NotAvailableError reports an availability shortfall with the true remaining
// count for the first date that cannot satisfy the request.
type NotAvailableError struct {
	RoomType  string
	Date      string
	Requested int
	Available int
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("not available: %s on %s (requested %d, available %d)",
		e.RoomType, e.Date, e.Requested, e.Available)
}

// ValidationError carries the field-level errors from the schema validator.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}

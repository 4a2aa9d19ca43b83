package service

import "github.com/colleco/booking-engine/internal/models"

// Pricer computes the commission breakdown attached to a priced booking.
type Pricer interface {
	ComputeTotals(items []models.BookingItem, partnerBookingCount int, opts PricingOptions) models.PricingSnapshot
}

type PricingOptions struct {
	// Nights drives the short-stay service-fee band.
	Nights int
}

// SchemaValidator checks a request payload against a product schema and
// returns field-level errors.
type SchemaValidator interface {
	Validate(payload map[string]any, product models.ProductType) []FieldError
}

// Notifier broadcasts booking events to realtime subscribers. Best effort:
// callers log failures and never let them affect booking state.
type Notifier interface {
	Broadcast(event string, payload any, scope string) error
}

// ThreadStarter opens the companion collaboration thread for a booking.
// Fire-and-forget.
type ThreadStarter interface {
	EnsureThread(bookingID string, seed map[string]any) error
}

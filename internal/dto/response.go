package dto

import (
	"time"

	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/service"
)

type BookingResponse struct {
	ID               string                 `json:"id"`
	Ref              string                 `json:"ref"`
	Status           models.BookingStatus   `json:"status"`
	Customer         models.Customer        `json:"customer"`
	Items            []models.BookingItem   `json:"items"`
	Pricing          models.PricingSnapshot `json:"pricing"`
	InventoryApplied bool                   `json:"inventory_applied"`
	CreatedAt        time.Time              `json:"created_at"`
	Checkout         *CheckoutResponse      `json:"checkout,omitempty"`
}

type CheckoutResponse struct {
	SessionID string  `json:"session_id"`
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
}

type AvailabilityResponse struct {
	OK        bool   `json:"ok"`
	Available int    `json:"available"`
	Details   string `json:"details,omitempty"`
}

type WebhookResponse struct {
	OK      bool             `json:"ok"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

type ErrorResponse struct {
	Message string               `json:"message"`
	Fields  []service.FieldError `json:"fields,omitempty"`
}

func ToBookingResponse(b *models.Booking, session *models.PaymentSession) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		Ref:              b.Ref,
		Status:           b.Status,
		Customer:         b.Customer,
		Items:            b.Items,
		Pricing:          b.Pricing,
		InventoryApplied: b.InventoryApplied,
		CreatedAt:        b.CreatedAt,
	}
	if session != nil {
		resp.Checkout = &CheckoutResponse{
			SessionID: session.SessionID,
			URL:       session.CheckoutURL,
			Amount:    session.Amount,
		}
	}
	return resp
}

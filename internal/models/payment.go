package models

import "time"

type PaymentSession struct {
	SessionID   string    `gorm:"primaryKey;type:uuid" json:"session_id"`
	BookingID   string    `gorm:"index;type:uuid;not null" json:"booking_id"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CheckoutURL string    `json:"checkout_url"`
	CreatedAt   time.Time `json:"created_at"`
}

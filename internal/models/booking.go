package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
)

type ProductType string

const (
	ProductAccommodation ProductType = "accommodation"
	ProductFlight        ProductType = "flight"
	ProductCar           ProductType = "car"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PricingSnapshot is the commission breakdown computed once at booking time
// and frozen on the record; webhook reconciliation compares against Total.
type PricingSnapshot struct {
	Subtotal         float64 `json:"subtotal"`
	TotalServiceFees float64 `json:"total_service_fees"`
	Commission       float64 `json:"commission"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionTier   string  `json:"commission_tier"`
	CollEcoEarns     float64 `json:"colleco_earns"`
	PartnerReceives  float64 `json:"partner_receives"`
	Total            float64 `json:"total"`
}

type Booking struct {
	ID               string          `gorm:"primaryKey;type:uuid" json:"id"`
	Ref              string          `gorm:"uniqueIndex;not null" json:"ref"`
	Status           BookingStatus   `gorm:"type:varchar(20);not null;default:'pending_payment'" json:"status"`
	Customer         Customer        `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Pricing          PricingSnapshot `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	InventoryApplied bool            `gorm:"not null;default:false" json:"inventory_applied"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
}

type BookingItem struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	BookingID string         `gorm:"index;type:uuid;not null" json:"booking_id"`
	Product   ProductType    `gorm:"type:varchar(20);not null" json:"product"`
	Name      string         `gorm:"not null" json:"name"`
	RoomType  string         `json:"room_type,omitempty"`
	StartDate string         `gorm:"type:varchar(10)" json:"start_date,omitempty"`
	EndDate   string         `gorm:"type:varchar(10)" json:"end_date,omitempty"`
	Qty       int            `gorm:"not null;default:1" json:"qty"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	Extras    datatypes.JSON `json:"extras,omitempty"`
	Amount    float64        `gorm:"not null" json:"amount"`
}

// RequiresInventory reports whether the item occupies ledger capacity.
func (i BookingItem) RequiresInventory() bool {
	return i.Product == ProductAccommodation && i.RoomType != "" && i.StartDate != "" && i.EndDate != ""
}

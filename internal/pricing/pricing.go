// Package pricing computes the platform's commission breakdown: a
// partner-volume commission tier plus a stay-length service fee.
package pricing

import (
	"math"

	"github.com/colleco/booking-engine/internal/models"
	svc "github.com/colleco/booking-engine/internal/service"
)

type tier struct {
	name        string
	minBookings int
	rate        float64
}

// Tiers by prior partner booking count; first match from the top wins.
var tiers = []tier{
	{"platinum", 100, 0.08},
	{"gold", 30, 0.10},
	{"silver", 10, 0.12},
	{"bronze", 0, 0.15},
}

const (
	shortStayNights  = 7
	shortStayFeeRate = 0.08
	longStayFeeRate  = 0.05
)

type Service struct{}

func New() *Service {
	return &Service{}
}

// ComputeTotals returns the frozen pricing snapshot for a booking: the
// partner keeps subtotal minus commission, the platform earns commission
// plus service fees, and the customer total is subtotal plus service fees.
func (s *Service) ComputeTotals(items []models.BookingItem, partnerBookingCount int, opts svc.PricingOptions) models.PricingSnapshot {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}

	name, rate := tierFor(partnerBookingCount)

	feeRate := shortStayFeeRate
	if opts.Nights >= shortStayNights {
		feeRate = longStayFeeRate
	}

	commission := round2(subtotal * rate)
	serviceFees := round2(subtotal * feeRate)

	return models.PricingSnapshot{
		Subtotal:         round2(subtotal),
		TotalServiceFees: serviceFees,
		Commission:       commission,
		CommissionRate:   rate,
		CommissionTier:   name,
		CollEcoEarns:     round2(commission + serviceFees),
		PartnerReceives:  round2(subtotal - commission),
		Total:            round2(subtotal + serviceFees),
	}
}

func tierFor(bookingCount int) (string, float64) {
	for _, t := range tiers {
		if bookingCount >= t.minBookings {
			return t.name, t.rate
		}
	}
	last := tiers[len(tiers)-1]
	return last.name, last.rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

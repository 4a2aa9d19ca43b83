package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/repository"
	"gorm.io/gorm"
)

// amountTolerance absorbs floating-point drift between the provider's
// asserted amount and the frozen pricing total.
const amountTolerance = 0.01

// PaymentService reconciles asynchronous payment-provider webhooks against
// booking state. Transitions are idempotent: duplicate delivery of a terminal
// status never touches the ledger twice.
type PaymentService interface {
	HandleWebhook(ctx context.Context, in WebhookInput) (*models.Booking, error)
}

type WebhookInput struct {
	SessionID string
	BookingID string
	Status    string
	Amount    *float64
}

type paymentService struct {
	bookingRepo repository.BookingRepository
	inventory   InventoryService
	notifier    Notifier
	clock       clock.Clock
}

func NewPaymentService(bookingRepo repository.BookingRepository, inventory InventoryService, notifier Notifier, clk clock.Clock) PaymentService {
	return &paymentService{bookingRepo: bookingRepo, inventory: inventory, notifier: notifier, clock: clk}
}

func (s *paymentService) HandleWebhook(ctx context.Context, in WebhookInput) (*models.Booking, error) {
	if in.SessionID == "" && in.BookingID == "" {
		return nil, ErrMissingBooking
	}

	var (
		booking *models.Booking
		event   string
	)
	err := s.bookingRepo.WithTx(ctx, func(txCtx context.Context) error {
		var session *models.PaymentSession

		bookingID := in.BookingID
		if bookingID == "" {
			var err error
			session, err = s.bookingRepo.GetSession(txCtx, in.SessionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookingNotFound
				}
				return err
			}
			bookingID = session.BookingID
		}

		var err error
		booking, err = s.bookingRepo.LockBooking(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if session == nil {
			if found, err := s.bookingRepo.GetSessionByBooking(txCtx, bookingID); err == nil {
				session = found
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		normalized := normalizeStatus(in.Status)
		switch normalized {
		case models.StatusConfirmed:
			if in.Amount != nil && math.Abs(*in.Amount-booking.Pricing.Total) > amountTolerance {
				// Mismatched amount never confirms. Returning success stops
				// the provider from retrying a delivery we will not accept.
				log.Printf("[payment] amount mismatch for booking %s: webhook %.2f, priced %.2f; not confirming",
					booking.ID, *in.Amount, booking.Pricing.Total)
				return nil
			}
			if booking.Status != models.StatusConfirmed {
				booking.Status = models.StatusConfirmed
				if !booking.InventoryApplied && needsInventory(booking) {
					if err := s.inventory.ApplyBooking(txCtx, booking); err != nil {
						return err
					}
				}
				booking.UpdatedAt = s.clock.Now()
				if err := s.bookingRepo.SaveBooking(txCtx, booking); err != nil {
					return err
				}
				event = "booking.confirmed"
			}
		case models.StatusCancelled:
			if booking.Status != models.StatusCancelled {
				if booking.InventoryApplied {
					if err := s.inventory.ReleaseBooking(txCtx, booking); err != nil {
						return err
					}
				}
				booking.Status = models.StatusCancelled
				booking.UpdatedAt = s.clock.Now()
				if err := s.bookingRepo.SaveBooking(txCtx, booking); err != nil {
					return err
				}
				event = "booking.cancelled"
			}
		default:
			// Non-terminal provider status: recorded verbatim on the
			// session below, no booking or inventory effect.
		}

		if session != nil {
			session.Status = in.Status
			if err := s.bookingRepo.SaveSession(txCtx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if event != "" {
		if err := s.notifier.Broadcast(event, booking, "partner"); err != nil {
			log.Printf("[payment] broadcast %s for %s: %v", event, booking.ID, err)
		}
	}
	return booking, nil
}

// normalizeStatus maps provider status vocabulary onto the booking state
// machine; anything unrecognized is non-terminal.
func normalizeStatus(status string) models.BookingStatus {
	switch status {
	case "paid", "completed", "success":
		return models.StatusConfirmed
	case "failed", "cancelled":
		return models.StatusCancelled
	}
	return ""
}

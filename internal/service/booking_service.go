package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService drives the booking lifecycle: creation per product type,
// the generic multi-item path, lookup and cancellation. Payment-driven
// transitions live in PaymentService.
type BookingService interface {
	BookAccommodation(ctx context.Context, in AccommodationInput) (*BookingResult, error)
	BookFlight(ctx context.Context, in FlightInput) (*BookingResult, error)
	BookCar(ctx context.Context, in CarInput) (*BookingResult, error)
	CreateBooking(ctx context.Context, in MultiItemInput) (*BookingResult, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
}

type Extra struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AccommodationInput struct {
	HotelName           string
	RoomType            string
	StartDate           string
	EndDate             string
	Nights              int
	Qty                 int
	UnitPrice           float64
	Extras              []Extra
	HoldID              string
	Customer            models.Customer
	PartnerBookingCount int
}

type FlightInput struct {
	Airline             string
	FlightNumber        string
	Origin              string
	Destination         string
	DepartDate          string
	Passengers          int
	UnitPrice           float64
	Extras              []Extra
	Customer            models.Customer
	PartnerBookingCount int
}

type CarInput struct {
	PickupLocation      string
	Vehicle             string
	Days                int
	UnitPrice           float64
	Extras              []Extra
	Customer            models.Customer
	PartnerBookingCount int
}

// ItemInput is a pre-assembled line for the generic multi-item path.
type ItemInput struct {
	Product   models.ProductType
	Name      string
	RoomType  string
	StartDate string
	EndDate   string
	Qty       int
	UnitPrice float64
	Extras    []Extra
	HoldID    string
}

type MultiItemInput struct {
	Items               []ItemInput
	Customer            models.Customer
	PartnerBookingCount int
}

type BookingResult struct {
	Booking *models.Booking
	Session *models.PaymentSession
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	invRepo     repository.InventoryRepository
	inventory   InventoryService
	holds       HoldService
	pricer      Pricer
	validator   SchemaValidator
	notifier    Notifier
	threads     ThreadStarter
	clock       clock.Clock
	checkoutURL string
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	invRepo repository.InventoryRepository,
	inventory InventoryService,
	holds HoldService,
	pricer Pricer,
	validator SchemaValidator,
	notifier Notifier,
	threads ThreadStarter,
	clk clock.Clock,
	checkoutURL string,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		invRepo:     invRepo,
		inventory:   inventory,
		holds:       holds,
		pricer:      pricer,
		validator:   validator,
		notifier:    notifier,
		threads:     threads,
		clock:       clk,
		checkoutURL: checkoutURL,
	}
}

func (s *bookingService) BookAccommodation(ctx context.Context, in AccommodationInput) (*BookingResult, error) {
	payload := map[string]any{
		"hotelName":    in.HotelName,
		"roomType":     in.RoomType,
		"startDate":    in.StartDate,
		"endDate":      in.EndDate,
		"nights":       in.Nights,
		"unitPrice":    in.UnitPrice,
		"customerName": in.Customer.Name,
	}
	if errs := s.validator.Validate(payload, models.ProductAccommodation); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	qty := in.Qty
	if qty < 1 {
		qty = 1
	}
	amount := in.UnitPrice*float64(in.Nights)*float64(qty) + extrasTotal(in.Extras)

	item := ItemInput{
		Product:   models.ProductAccommodation,
		Name:      in.HotelName,
		RoomType:  in.RoomType,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Qty:       qty,
		UnitPrice: in.UnitPrice,
		Extras:    in.Extras,
		HoldID:    in.HoldID,
	}
	return s.finalize(ctx, []ItemInput{item}, []float64{amount}, in.Customer,
		in.PartnerBookingCount, PricingOptions{Nights: in.Nights})
}

func (s *bookingService) BookFlight(ctx context.Context, in FlightInput) (*BookingResult, error) {
	payload := map[string]any{
		"airline":      in.Airline,
		"flightNumber": in.FlightNumber,
		"departDate":   in.DepartDate,
		"passengers":   in.Passengers,
		"unitPrice":    in.UnitPrice,
		"customerName": in.Customer.Name,
	}
	if errs := s.validator.Validate(payload, models.ProductFlight); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	amount := in.UnitPrice*float64(in.Passengers) + extrasTotal(in.Extras)
	item := ItemInput{
		Product:   models.ProductFlight,
		Name:      fmt.Sprintf("%s %s %s-%s", in.Airline, in.FlightNumber, in.Origin, in.Destination),
		StartDate: in.DepartDate,
		Qty:       in.Passengers,
		UnitPrice: in.UnitPrice,
		Extras:    in.Extras,
	}
	return s.finalize(ctx, []ItemInput{item}, []float64{amount}, in.Customer,
		in.PartnerBookingCount, PricingOptions{})
}

func (s *bookingService) BookCar(ctx context.Context, in CarInput) (*BookingResult, error) {
	payload := map[string]any{
		"pickupLocation": in.PickupLocation,
		"days":           in.Days,
		"unitPrice":      in.UnitPrice,
		"customerName":   in.Customer.Name,
	}
	if errs := s.validator.Validate(payload, models.ProductCar); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	amount := in.UnitPrice*float64(in.Days) + extrasTotal(in.Extras)
	name := in.PickupLocation
	if in.Vehicle != "" {
		name = fmt.Sprintf("%s (%s)", in.Vehicle, in.PickupLocation)
	}
	item := ItemInput{
		Product:   models.ProductCar,
		Name:      name,
		Qty:       in.Days,
		UnitPrice: in.UnitPrice,
		Extras:    in.Extras,
	}
	return s.finalize(ctx, []ItemInput{item}, []float64{amount}, in.Customer,
		in.PartnerBookingCount, PricingOptions{})
}

func (s *bookingService) CreateBooking(ctx context.Context, in MultiItemInput) (*BookingResult, error) {
	if len(in.Items) == 0 {
		return nil, &ValidationError{Fields: []FieldError{{Field: "items", Message: "at least one item is required"}}}
	}
	var errs []FieldError
	for i, item := range in.Items {
		if item.Name == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].name", i), Message: "required"})
		}
		if item.Product == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].product", i), Message: "required"})
		}
	}
	if in.Customer.Name == "" {
		errs = append(errs, FieldError{Field: "customer.name", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	amounts := make([]float64, len(in.Items))
	nights := 0
	for i, item := range in.Items {
		qty := item.Qty
		if qty < 1 {
			qty = 1
			in.Items[i].Qty = qty
		}
		amounts[i] = item.UnitPrice*float64(qty) + extrasTotal(item.Extras)
		if item.Product == models.ProductAccommodation && item.StartDate != "" && item.EndDate != "" {
			if dates, err := dateRange(item.StartDate, item.EndDate); err == nil && len(dates) > nights {
				nights = len(dates)
			}
		}
	}
	return s.finalize(ctx, in.Items, amounts, in.Customer, in.PartnerBookingCount, PricingOptions{Nights: nights})
}

// finalize runs the shared validate-then-commit tail of every creation path:
// hold consumption or availability check, pricing snapshot, persistence, then
// payment session or immediate inventory apply. Everything up to the commit
// happens in one transaction.
func (s *bookingService) finalize(ctx context.Context, inputs []ItemInput, amounts []float64,
	customer models.Customer, partnerBookingCount int, opts PricingOptions) (*BookingResult, error) {

	var result BookingResult
	err := s.bookingRepo.WithTx(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		booking := &models.Booking{
			ID:        uuid.NewString(),
			Ref:       newBookingRef(),
			Customer:  customer,
			CreatedAt: now,
			UpdatedAt: now,
		}

		var total float64
		items := make([]models.BookingItem, 0, len(inputs))
		for i, in := range inputs {
			amount := amounts[i]
			total += amount

			item := models.BookingItem{
				ID:        uuid.NewString(),
				BookingID: booking.ID,
				Product:   in.Product,
				Name:      in.Name,
				RoomType:  in.RoomType,
				StartDate: in.StartDate,
				EndDate:   in.EndDate,
				Qty:       in.Qty,
				UnitPrice: in.UnitPrice,
				Amount:    amount,
			}
			if len(in.Extras) > 0 {
				raw, err := json.Marshal(in.Extras)
				if err != nil {
					return fmt.Errorf("marshal extras: %w", err)
				}
				item.Extras = datatypes.JSON(raw)
			}

			if item.RequiresInventory() {
				switch {
				case in.HoldID != "":
					if _, err := s.holds.ConsumeHold(txCtx, in.HoldID, item.RoomType, item.StartDate, item.EndDate); err != nil {
						return err
					}
				case amount > 0:
					// Paid stays must reserve via a hold first so capacity
					// is not held implicitly during the checkout redirect.
					return ErrHoldRequired
				default:
					if _, err := s.invRepo.LockRoomType(txCtx, item.RoomType); err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							return ErrUnknownRoomType
						}
						return err
					}
					if _, err := s.inventory.CheckAvailability(txCtx, item.RoomType, item.StartDate, item.EndDate, item.Qty); err != nil {
						return err
					}
				}
			}
			items = append(items, item)
		}

		booking.Items = items
		if total > 0 {
			booking.Status = models.StatusPendingPayment
			booking.Pricing = s.pricer.ComputeTotals(items, partnerBookingCount, opts)
		} else {
			booking.Status = models.StatusConfirmed
		}

		if err := s.bookingRepo.CreateBooking(txCtx, booking); err != nil {
			return fmt.Errorf("persist booking: %w", err)
		}

		if booking.Status == models.StatusConfirmed && needsInventory(booking) {
			if err := s.inventory.ApplyBooking(txCtx, booking); err != nil {
				return err
			}
			if err := s.bookingRepo.SaveBooking(txCtx, booking); err != nil {
				return err
			}
		}

		if booking.Status == models.StatusPendingPayment {
			session := &models.PaymentSession{
				SessionID: uuid.NewString(),
				BookingID: booking.ID,
				Status:    "pending",
				Amount:    booking.Pricing.Total,
				CreatedAt: now,
			}
			session.CheckoutURL = fmt.Sprintf("%s/%s", s.checkoutURL, session.SessionID)
			if err := s.bookingRepo.CreateSession(txCtx, session); err != nil {
				return fmt.Errorf("persist payment session: %w", err)
			}
			result.Session = session
		}

		result.Booking = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side channels only after the commit; both are best effort.
	if err := s.threads.EnsureThread(result.Booking.ID, map[string]any{
		"ref":      result.Booking.Ref,
		"customer": result.Booking.Customer.Name,
	}); err != nil {
		log.Printf("[booking] ensure thread for %s: %v", result.Booking.ID, err)
	}
	if err := s.notifier.Broadcast("booking.created", result.Booking, "partner"); err != nil {
		log.Printf("[booking] broadcast booking.created for %s: %v", result.Booking.ID, err)
	}

	return &result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	var result *models.Booking
	err := s.bookingRepo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.LockBooking(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == models.StatusCancelled {
			return ErrAlreadyCancelled
		}

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
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Broadcast("booking.cancelled", result, "partner"); err != nil {
		log.Printf("[booking] broadcast booking.cancelled for %s: %v", result.ID, err)
	}
	return result, nil
}

func needsInventory(b *models.Booking) bool {
	for _, item := range b.Items {
		if item.RequiresInventory() {
			return true
		}
	}
	return false
}

func extrasTotal(extras []Extra) float64 {
	var total float64
	for _, e := range extras {
		total += e.Price
	}
	return total
}

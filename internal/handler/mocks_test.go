package handler_test

import (
	"context"

	"github.com/colleco/booking-engine/internal/middleware"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	return e
}

func echoContentType() (string, string) {
	return echo.HeaderContentType, echo.MIMEApplicationJSON
}

type mockBookingService struct {
	bookAccommodationFn func(ctx context.Context, in service.AccommodationInput) (*service.BookingResult, error)
	bookFlightFn        func(ctx context.Context, in service.FlightInput) (*service.BookingResult, error)
	bookCarFn           func(ctx context.Context, in service.CarInput) (*service.BookingResult, error)
	createBookingFn     func(ctx context.Context, in service.MultiItemInput) (*service.BookingResult, error)
	getBookingFn        func(ctx context.Context, id string) (*models.Booking, error)
	cancelBookingFn     func(ctx context.Context, id string) (*models.Booking, error)
}

func (m *mockBookingService) BookAccommodation(ctx context.Context, in service.AccommodationInput) (*service.BookingResult, error) {
	return m.bookAccommodationFn(ctx, in)
}

func (m *mockBookingService) BookFlight(ctx context.Context, in service.FlightInput) (*service.BookingResult, error) {
	return m.bookFlightFn(ctx, in)
}

func (m *mockBookingService) BookCar(ctx context.Context, in service.CarInput) (*service.BookingResult, error) {
	return m.bookCarFn(ctx, in)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.MultiItemInput) (*service.BookingResult, error) {
	return m.createBookingFn(ctx, in)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.getBookingFn(ctx, id)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.cancelBookingFn(ctx, id)
}

type mockInventoryService struct {
	checkAvailabilityFn func(ctx context.Context, roomType, startDate, endDate string, qty int) (int, error)
	snapshotFn          func(ctx context.Context) (*service.InventorySnapshot, error)
	replaceRoomTypesFn  func(ctx context.Context, roomTypes map[string]service.RoomTypeSpec, resetBooked bool) ([]models.RoomType, error)
	upsertRoomTypeFn    func(ctx context.Context, name string, totalCapacity int, price float64) (*models.RoomType, error)
	deleteRoomTypeFn    func(ctx context.Context, name string) error
}

func (m *mockInventoryService) CheckAvailability(ctx context.Context, roomType, startDate, endDate string, qty int) (int, error) {
	return m.checkAvailabilityFn(ctx, roomType, startDate, endDate, qty)
}

func (m *mockInventoryService) ApplyBooking(ctx context.Context, booking *models.Booking) error {
	panic("not used by handlers")
}

func (m *mockInventoryService) ReleaseBooking(ctx context.Context, booking *models.Booking) error {
	panic("not used by handlers")
}

func (m *mockInventoryService) Snapshot(ctx context.Context) (*service.InventorySnapshot, error) {
	return m.snapshotFn(ctx)
}

func (m *mockInventoryService) ReplaceRoomTypes(ctx context.Context, roomTypes map[string]service.RoomTypeSpec, resetBooked bool) ([]models.RoomType, error) {
	return m.replaceRoomTypesFn(ctx, roomTypes, resetBooked)
}

func (m *mockInventoryService) UpsertRoomType(ctx context.Context, name string, totalCapacity int, price float64) (*models.RoomType, error) {
	return m.upsertRoomTypeFn(ctx, name, totalCapacity, price)
}

func (m *mockInventoryService) DeleteRoomType(ctx context.Context, name string) error {
	return m.deleteRoomTypeFn(ctx, name)
}

type mockHoldService struct {
	createHoldFn  func(ctx context.Context, in service.CreateHoldInput) (*models.Hold, error)
	releaseHoldFn func(ctx context.Context, id string) error
	consumeHoldFn func(ctx context.Context, id, roomType, startDate, endDate string) (*models.Hold, error)
}

func (m *mockHoldService) CreateHold(ctx context.Context, in service.CreateHoldInput) (*models.Hold, error) {
	return m.createHoldFn(ctx, in)
}

func (m *mockHoldService) ReleaseHold(ctx context.Context, id string) error {
	return m.releaseHoldFn(ctx, id)
}

func (m *mockHoldService) ConsumeHold(ctx context.Context, id, roomType, startDate, endDate string) (*models.Hold, error) {
	return m.consumeHoldFn(ctx, id, roomType, startDate, endDate)
}

type mockPaymentService struct {
	handleWebhookFn func(ctx context.Context, in service.WebhookInput) (*models.Booking, error)
}

func (m *mockPaymentService) HandleWebhook(ctx context.Context, in service.WebhookInput) (*models.Booking, error) {
	return m.handleWebhookFn(ctx, in)
}

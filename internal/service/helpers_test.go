package service_test

import (
	"context"
	"time"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/pricing"
	"github.com/colleco/booking-engine/internal/schema"
	"github.com/colleco/booking-engine/internal/service"
)

type testEnv struct {
	invRepo   *fakeInventoryRepo
	bookRepo  *fakeBookingRepo
	clock     *clock.Fixed
	notifier  *recordingNotifier
	inventory service.InventoryService
	holds     service.HoldService
	bookings  service.BookingService
	payments  service.PaymentService
	sweeper   *service.Sweeper
}

func newTestEnv() *testEnv {
	invRepo := newFakeInventoryRepo()
	bookRepo := newFakeBookingRepo()
	clk := clock.NewFixed(time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}

	inventory := service.NewInventoryService(invRepo, clk)
	holds := service.NewHoldService(invRepo, inventory, clk)
	bookings := service.NewBookingService(
		bookRepo, invRepo, inventory, holds,
		pricing.New(), schema.NewValidator(),
		notifier, nopThreads{}, clk, "https://checkout.test/pay",
	)
	payments := service.NewPaymentService(bookRepo, inventory, notifier, clk)
	sweeper := service.NewSweeper(invRepo, clk, time.Minute)

	return &testEnv{
		invRepo:   invRepo,
		bookRepo:  bookRepo,
		clock:     clk,
		notifier:  notifier,
		inventory: inventory,
		holds:     holds,
		bookings:  bookings,
		payments:  payments,
		sweeper:   sweeper,
	}
}

func (e *testEnv) addRoomType(name string, total int, price float64) {
	_ = e.invRepo.SaveRoomType(context.Background(), &models.RoomType{
		Name:          name,
		TotalCapacity: total,
		Price:         price,
	})
}

func (e *testEnv) setBooked(roomType, date string, count int) {
	_ = e.invRepo.AddBooked(context.Background(), roomType, date, count)
}

func (e *testEnv) bookedCount(roomType, date string) int {
	e.invRepo.mu.Lock()
	defer e.invRepo.mu.Unlock()
	return e.invRepo.booked(date, roomType)
}

func (e *testEnv) customer() models.Customer {
	return models.Customer{Name: "Ada Partner", Email: "ada@example.com", Phone: "+27110000000"}
}

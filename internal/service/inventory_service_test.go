package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability_CountsBookedAndHolds(t *testing.T) {
	// capacity 5, 3 booked, one active hold for 1: exactly 1 left.
	env := newTestEnv()
	env.addRoomType("standard", 5, 1200)
	env.setBooked("standard", "2025-12-01", 3)
	env.setBooked("standard", "2025-12-02", 3)

	_, err := env.holds.CreateHold(context.Background(), service.CreateHoldInput{
		RoomType:  "standard",
		StartDate: "2025-12-01",
		EndDate:   "2025-12-03",
		Qty:       1,
	})
	require.NoError(t, err)

	available, err := env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-03", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, available)

	_, err = env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-03", 2)
	var notAvailable *service.NotAvailableError
	require.ErrorAs(t, err, &notAvailable)
	assert.Equal(t, 1, notAvailable.Available)
	assert.Equal(t, 2, notAvailable.Requested)
	assert.Equal(t, "2025-12-01", notAvailable.Date)
}

func TestCheckAvailability_ReportsTrueRemainingCount(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 2, 800)
	env.setBooked("standard", "2025-12-01", 2)

	_, err := env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-02", 1)
	var notAvailable *service.NotAvailableError
	require.ErrorAs(t, err, &notAvailable)
	assert.Equal(t, 0, notAvailable.Available)
}

func TestCheckAvailability_UnknownRoomType(t *testing.T) {
	env := newTestEnv()

	_, err := env.inventory.CheckAvailability(context.Background(), "penthouse", "2025-12-01", "2025-12-02", 1)
	assert.ErrorIs(t, err, service.ErrUnknownRoomType)
}

func TestCheckAvailability_InvalidDates(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 5, 1200)

	cases := []struct{ start, end string }{
		{"2025-12-03", "2025-12-01"},
		{"2025-12-01", "2025-12-01"},
		{"not-a-date", "2025-12-02"},
		{"2025-12-01", "garbage"},
	}
	for _, c := range cases {
		_, err := env.inventory.CheckAvailability(context.Background(), "standard", c.start, c.end, 1)
		assert.ErrorIs(t, err, service.ErrInvalidDates, "start=%s end=%s", c.start, c.end)
	}
}

func TestCheckAvailability_ExpiredHoldsIgnored(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 1, 500)

	_, err := env.holds.CreateHold(context.Background(), service.CreateHoldInput{
		RoomType:  "standard",
		StartDate: "2025-12-01",
		EndDate:   "2025-12-02",
		Qty:       1,
	})
	require.NoError(t, err)

	_, err = env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-02", 1)
	assert.Error(t, err)

	env.clock.Advance(11 * time.Minute)

	available, err := env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-02", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, available)
}

func TestApplyAndReleaseBooking_GuardedByFlag(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 5, 1200)

	booking := &models.Booking{
		ID: "b-1",
		Items: []models.BookingItem{{
			Product:   models.ProductAccommodation,
			RoomType:  "standard",
			StartDate: "2025-12-01",
			EndDate:   "2025-12-03",
			Qty:       2,
		}},
	}

	require.NoError(t, env.inventory.ApplyBooking(context.Background(), booking))
	assert.True(t, booking.InventoryApplied)
	assert.Equal(t, 2, env.bookedCount("standard", "2025-12-01"))
	assert.Equal(t, 2, env.bookedCount("standard", "2025-12-02"))

	// Second apply is a no-op.
	require.NoError(t, env.inventory.ApplyBooking(context.Background(), booking))
	assert.Equal(t, 2, env.bookedCount("standard", "2025-12-01"))

	require.NoError(t, env.inventory.ReleaseBooking(context.Background(), booking))
	assert.False(t, booking.InventoryApplied)
	assert.Equal(t, 0, env.bookedCount("standard", "2025-12-01"))

	// Release without apply is a no-op, and counts never go negative.
	require.NoError(t, env.inventory.ReleaseBooking(context.Background(), booking))
	assert.Equal(t, 0, env.bookedCount("standard", "2025-12-02"))
}

func TestReplaceRoomTypes_Validation(t *testing.T) {
	env := newTestEnv()

	_, err := env.inventory.ReplaceRoomTypes(context.Background(), map[string]service.RoomTypeSpec{
		"standard": {Total: -1, Price: 100},
	}, false)
	assert.ErrorIs(t, err, service.ErrInvalidCapacity)

	_, err = env.inventory.ReplaceRoomTypes(context.Background(), map[string]service.RoomTypeSpec{
		"standard": {Total: 5, Price: -100},
	}, false)
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
}

func TestReplaceRoomTypes_ResetClearsBookedCounts(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 5, 1200)
	env.setBooked("standard", "2025-12-01", 4)

	_, err := env.inventory.ReplaceRoomTypes(context.Background(), map[string]service.RoomTypeSpec{
		"standard": {Total: 10, Price: 900},
		"deluxe":   {Total: 2, Price: 2500},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 0, env.bookedCount("standard", "2025-12-01"))

	available, err := env.inventory.CheckAvailability(context.Background(), "standard", "2025-12-01", "2025-12-02", 1)
	require.NoError(t, err)
	assert.Equal(t, 10, available)
}

func TestUpsertAndDeleteRoomType(t *testing.T) {
	env := newTestEnv()

	rt, err := env.inventory.UpsertRoomType(context.Background(), "deluxe", 3, 2200)
	require.NoError(t, err)
	assert.Equal(t, 3, rt.TotalCapacity)

	_, err = env.inventory.UpsertRoomType(context.Background(), "deluxe", -1, 2200)
	assert.ErrorIs(t, err, service.ErrInvalidCapacity)

	assert.NoError(t, env.inventory.DeleteRoomType(context.Background(), "deluxe"))
	assert.ErrorIs(t, env.inventory.DeleteRoomType(context.Background(), "deluxe"), service.ErrRoomTypeNotFound)
}

func TestSnapshot_GroupsByDate(t *testing.T) {
	env := newTestEnv()
	env.addRoomType("standard", 5, 1200)
	env.setBooked("standard", "2025-12-01", 2)

	snapshot, err := env.inventory.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.RoomTypes, 1)
	assert.Equal(t, 2, snapshot.BookedByDate["2025-12-01"]["standard"])
}

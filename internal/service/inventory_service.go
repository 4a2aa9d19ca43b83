package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/repository"
	"gorm.io/gorm"
)

// InventoryService owns the room-type ledger: the availability formula, the
// apply/release side of booking transitions and the admin mutations.
type InventoryService interface {
	// CheckAvailability returns the minimum available count across the range,
	// or a NotAvailableError carrying the count of the first insufficient
	// date. It joins the caller's transaction when one is in the context.
	CheckAvailability(ctx context.Context, roomType, startDate, endDate string, qty int) (int, error)
	// ApplyBooking commits the booking's accommodation nights to the ledger
	// and flips InventoryApplied; the caller persists the booking in the same
	// transaction. Calling it on an applied booking is a no-op.
	ApplyBooking(ctx context.Context, booking *models.Booking) error
	// ReleaseBooking is the inverse of ApplyBooking, floored at zero per cell.
	ReleaseBooking(ctx context.Context, booking *models.Booking) error

	Snapshot(ctx context.Context) (*InventorySnapshot, error)
	ReplaceRoomTypes(ctx context.Context, roomTypes map[string]RoomTypeSpec, resetBooked bool) ([]models.RoomType, error)
	UpsertRoomType(ctx context.Context, name string, totalCapacity int, price float64) (*models.RoomType, error)
	DeleteRoomType(ctx context.Context, name string) error
}

type RoomTypeSpec struct {
	Total int
	Price float64
}

type InventorySnapshot struct {
	RoomTypes    []models.RoomType         `json:"room_types"`
	BookedByDate map[string]map[string]int `json:"booked_by_date"`
	Holds        []models.Hold             `json:"holds"`
}

type inventoryService struct {
	repo  repository.InventoryRepository
	clock clock.Clock
}

func NewInventoryService(repo repository.InventoryRepository, clk clock.Clock) InventoryService {
	return &inventoryService{repo: repo, clock: clk}
}

// CheckAvailability is the single source of truth for
// available = capacity - booked - active holds, per night.
func (s *inventoryService) CheckAvailability(ctx context.Context, roomType, startDate, endDate string, qty int) (int, error) {
	if qty < 1 {
		return 0, ErrInvalidQuantity
	}

	dates, err := dateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}

	rt, err := s.repo.GetRoomType(ctx, roomType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnknownRoomType
		}
		return 0, fmt.Errorf("load room type: %w", err)
	}

	booked, err := s.repo.BookedCounts(ctx, roomType, dates)
	if err != nil {
		return 0, fmt.Errorf("load booked counts: %w", err)
	}

	now := s.clock.Now()
	holds, err := s.repo.ListActiveHolds(ctx, roomType, now)
	if err != nil {
		return 0, fmt.Errorf("load active holds: %w", err)
	}

	minAvailable := rt.TotalCapacity
	for _, date := range dates {
		held := 0
		for _, h := range holds {
			if h.Covers(date) {
				held += h.Qty
			}
		}
		available := rt.TotalCapacity - booked[date] - held
		if available < minAvailable {
			minAvailable = available
		}
		if available < qty {
			return available, &NotAvailableError{
				RoomType:  roomType,
				Date:      date,
				Requested: qty,
				Available: available,
			}
		}
	}
	return minAvailable, nil
}

func (s *inventoryService) ApplyBooking(ctx context.Context, booking *models.Booking) error {
	if booking.InventoryApplied {
		return nil
	}
	return s.mutateLedger(ctx, booking, 1)
}

func (s *inventoryService) ReleaseBooking(ctx context.Context, booking *models.Booking) error {
	if !booking.InventoryApplied {
		return nil
	}
	return s.mutateLedger(ctx, booking, -1)
}

func (s *inventoryService) mutateLedger(ctx context.Context, booking *models.Booking, sign int) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, item := range booking.Items {
			if !item.RequiresInventory() {
				continue
			}
			// Lock serializes against concurrent hold creation on the
			// same room type.
			if _, err := s.repo.LockRoomType(txCtx, item.RoomType); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownRoomType
				}
				return err
			}
			dates, err := dateRange(item.StartDate, item.EndDate)
			if err != nil {
				return err
			}
			for _, date := range dates {
				if err := s.repo.AddBooked(txCtx, item.RoomType, date, sign*item.Qty); err != nil {
					return fmt.Errorf("update ledger cell %s/%s: %w", item.RoomType, date, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	booking.InventoryApplied = sign > 0
	return nil
}

func (s *inventoryService) Snapshot(ctx context.Context) (*InventorySnapshot, error) {
	roomTypes, err := s.repo.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	nights, err := s.repo.ListRoomNights(ctx)
	if err != nil {
		return nil, err
	}
	holds, err := s.repo.ListHolds(ctx)
	if err != nil {
		return nil, err
	}

	bookedByDate := make(map[string]map[string]int)
	for _, n := range nights {
		if bookedByDate[n.Date] == nil {
			bookedByDate[n.Date] = make(map[string]int)
		}
		bookedByDate[n.Date][n.RoomType] = n.Booked
	}

	return &InventorySnapshot{
		RoomTypes:    roomTypes,
		BookedByDate: bookedByDate,
		Holds:        holds,
	}, nil
}

func (s *inventoryService) ReplaceRoomTypes(ctx context.Context, specs map[string]RoomTypeSpec, resetBooked bool) ([]models.RoomType, error) {
	roomTypes := make([]models.RoomType, 0, len(specs))
	for name, spec := range specs {
		if spec.Total < 0 {
			return nil, ErrInvalidCapacity
		}
		if spec.Price < 0 {
			return nil, ErrInvalidPrice
		}
		roomTypes = append(roomTypes, models.RoomType{
			Name:          name,
			TotalCapacity: spec.Total,
			Price:         spec.Price,
		})
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceRoomTypes(txCtx, roomTypes, resetBooked)
	})
	if err != nil {
		return nil, err
	}
	if resetBooked {
		log.Printf("[inventory] room types replaced (%d) with booked counts reset", len(roomTypes))
	}
	return s.repo.ListRoomTypes(ctx)
}

func (s *inventoryService) UpsertRoomType(ctx context.Context, name string, totalCapacity int, price float64) (*models.RoomType, error) {
	if totalCapacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	rt := &models.RoomType{Name: name, TotalCapacity: totalCapacity, Price: price}
	if err := s.repo.SaveRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *inventoryService) DeleteRoomType(ctx context.Context, name string) error {
	if err := s.repo.DeleteRoomType(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomTypeNotFound
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultHoldMinutes = 10

// HoldService issues, releases and consumes time-boxed reservations against
// the ledger.
type HoldService interface {
	CreateHold(ctx context.Context, in CreateHoldInput) (*models.Hold, error)
	// ReleaseHold expires the hold immediately so it stops counting against
	// availability without waiting for the sweeper. Releasing twice is a
	// no-op.
	ReleaseHold(ctx context.Context, id string) error
	// ConsumeHold permanently marks the hold as used by a booking whose item
	// must match the hold's room type and dates exactly.
	ConsumeHold(ctx context.Context, id, roomType, startDate, endDate string) (*models.Hold, error)
}

type CreateHoldInput struct {
	RoomType    string
	StartDate   string
	EndDate     string
	Qty         int
	HoldMinutes int
}

type holdService struct {
	repo      repository.InventoryRepository
	inventory InventoryService
	clock     clock.Clock
}

func NewHoldService(repo repository.InventoryRepository, inventory InventoryService, clk clock.Clock) HoldService {
	return &holdService{repo: repo, inventory: inventory, clock: clk}
}

func (s *holdService) CreateHold(ctx context.Context, in CreateHoldInput) (*models.Hold, error) {
	if in.Qty < 1 {
		return nil, ErrInvalidQuantity
	}
	minutes := in.HoldMinutes
	if minutes <= 0 {
		minutes = DefaultHoldMinutes
	}

	var hold *models.Hold
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Lock first: the availability read and the hold insert must be one
		// critical section per room type or two checkouts can both pass the
		// check and oversell.
		if _, err := s.repo.LockRoomType(txCtx, in.RoomType); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownRoomType
			}
			return err
		}

		if _, err := s.inventory.CheckAvailability(txCtx, in.RoomType, in.StartDate, in.EndDate, in.Qty); err != nil {
			return err
		}

		now := s.clock.Now()
		hold = &models.Hold{
			ID:        uuid.NewString(),
			RoomType:  in.RoomType,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Qty:       in.Qty,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Duration(minutes) * time.Minute),
		}
		return s.repo.CreateHold(txCtx, hold)
	})
	if err != nil {
		return nil, err
	}
	return hold, nil
}

func (s *holdService) ReleaseHold(ctx context.Context, id string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.LockHold(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHoldNotFound
			}
			return err
		}
		if hold.Consumed {
			// Consumed holds are inert; nothing to release.
			return nil
		}
		hold.ExpiresAt = s.clock.Now()
		return s.repo.SaveHold(txCtx, hold)
	})
}

func (s *holdService) ConsumeHold(ctx context.Context, id, roomType, startDate, endDate string) (*models.Hold, error) {
	var hold *models.Hold
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		h, err := s.repo.LockHold(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidHold
			}
			return err
		}
		if h.RoomType != roomType {
			return ErrHoldRoomTypeMismatch
		}
		if h.StartDate != startDate || h.EndDate != endDate {
			return ErrHoldDatesMismatch
		}
		if h.Consumed {
			return ErrHoldAlreadyUsed
		}
		now := s.clock.Now()
		if !h.ExpiresAt.After(now) {
			// An expired hold no longer backs the availability math;
			// honoring it could oversell.
			return ErrInvalidHold
		}
		h.Consumed = true
		h.ConsumedAt = &now
		if err := s.repo.SaveHold(txCtx, h); err != nil {
			return err
		}
		hold = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hold, nil
}

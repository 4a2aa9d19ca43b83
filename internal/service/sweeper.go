package service

import (
	"context"
	"log"
	"time"

	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/repository"
)

const DefaultSweepInterval = 60 * time.Second

// Sweeper periodically deletes expired, unconsumed holds so availability
// queries stay accurate without client action. It stops when its context is
// cancelled.
type Sweeper struct {
	repo     repository.InventoryRepository
	clock    clock.Clock
	interval time.Duration
	done     chan struct{}
}

func NewSweeper(repo repository.InventoryRepository, clk clock.Clock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		repo:     repo,
		clock:    clk,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[sweeper] stopping")
				return
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					log.Printf("[sweeper] sweep failed: %v", err)
				}
			}
		}
	}()
}

// Wait blocks until the loop has exited after context cancellation.
func (s *Sweeper) Wait() {
	<-s.done
}

// SweepOnce removes all expired unconsumed holds in a single statement.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpiredHolds(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("[sweeper] removed %d expired hold(s)", removed)
	}
	return removed, nil
}

package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/colleco/booking-engine/internal/models"
	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. WithTx runs the function
// directly; the tests are single-writer so transactional isolation is not
// exercised here.

type fakeInventoryRepo struct {
	mu        sync.Mutex
	roomTypes map[string]models.RoomType
	nights    map[string]int // "date|roomType" -> booked
	holds     map[string]models.Hold
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		roomTypes: make(map[string]models.RoomType),
		nights:    make(map[string]int),
		holds:     make(map[string]models.Hold),
	}
}

func nightKey(date, roomType string) string { return date + "|" + roomType }

func (r *fakeInventoryRepo) booked(date, roomType string) int {
	return r.nights[nightKey(date, roomType)]
}

func (r *fakeInventoryRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeInventoryRepo) GetRoomType(ctx context.Context, name string) (*models.RoomType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.roomTypes[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rt, nil
}

func (r *fakeInventoryRepo) LockRoomType(ctx context.Context, name string) (*models.RoomType, error) {
	return r.GetRoomType(ctx, name)
}

func (r *fakeInventoryRepo) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RoomType
	for _, rt := range r.roomTypes {
		out = append(out, rt)
	}
	return out, nil
}

func (r *fakeInventoryRepo) SaveRoomType(ctx context.Context, rt *models.RoomType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomTypes[rt.Name] = *rt
	return nil
}

func (r *fakeInventoryRepo) DeleteRoomType(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roomTypes[name]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.roomTypes, name)
	return nil
}

func (r *fakeInventoryRepo) ReplaceRoomTypes(ctx context.Context, roomTypes []models.RoomType, resetBooked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomTypes = make(map[string]models.RoomType)
	for _, rt := range roomTypes {
		r.roomTypes[rt.Name] = rt
	}
	if resetBooked {
		r.nights = make(map[string]int)
	}
	return nil
}

func (r *fakeInventoryRepo) BookedCounts(ctx context.Context, roomType string, dates []string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int)
	for _, d := range dates {
		if n, ok := r.nights[nightKey(d, roomType)]; ok {
			out[d] = n
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) AddBooked(ctx context.Context, roomType, date string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := nightKey(date, roomType)
	n := r.nights[key] + delta
	if n < 0 {
		n = 0
	}
	r.nights[key] = n
	return nil
}

func (r *fakeInventoryRepo) ListRoomNights(ctx context.Context) ([]models.RoomNight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RoomNight
	for key, n := range r.nights {
		date, roomType := key[:10], key[11:]
		out = append(out, models.RoomNight{Date: date, RoomType: roomType, Booked: n})
	}
	return out, nil
}

func (r *fakeInventoryRepo) CreateHold(ctx context.Context, hold *models.Hold) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holds[hold.ID] = *hold
	return nil
}

func (r *fakeInventoryRepo) GetHold(ctx context.Context, id string) (*models.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}

func (r *fakeInventoryRepo) LockHold(ctx context.Context, id string) (*models.Hold, error) {
	return r.GetHold(ctx, id)
}

func (r *fakeInventoryRepo) SaveHold(ctx context.Context, hold *models.Hold) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holds[hold.ID] = *hold
	return nil
}

func (r *fakeInventoryRepo) ListHolds(ctx context.Context) ([]models.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Hold
	for _, h := range r.holds {
		out = append(out, h)
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListActiveHolds(ctx context.Context, roomType string, now time.Time) ([]models.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Hold
	for _, h := range r.holds {
		if h.RoomType == roomType && h.Active(now) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, h := range r.holds {
		if !h.Consumed && !h.ExpiresAt.After(now) {
			delete(r.holds, id)
			removed++
		}
	}
	return removed, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	sessions map[string]*models.PaymentSession
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		sessions: make(map[string]*models.PaymentSession),
	}
}

func (r *fakeBookingRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) LockBooking(ctx context.Context, id string) (*models.Booking, error) {
	return r.GetBooking(ctx, id)
}

func (r *fakeBookingRepo) SaveBooking(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) CreateSession(ctx context.Context, session *models.PaymentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.SessionID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetSession(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeBookingRepo) GetSessionByBooking(ctx context.Context, bookingID string) (*models.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.BookingID == bookingID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookingRepo) SaveSession(ctx context.Context, session *models.PaymentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.SessionID] = &clone
	return nil
}

// recordingNotifier captures broadcast events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Broadcast(event string, payload any, scope string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type nopThreads struct{}

func (nopThreads) EnsureThread(bookingID string, seed map[string]any) error { return nil }

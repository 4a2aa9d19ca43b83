package repository

import (
	"context"

	"github.com/colleco/booking-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	LockBooking(ctx context.Context, id string) (*models.Booking, error)
	SaveBooking(ctx context.Context, booking *models.Booking) error

	CreateSession(ctx context.Context, session *models.PaymentSession) error
	GetSession(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	GetSessionByBooking(ctx context.Context, bookingID string) (*models.PaymentSession, error)
	SaveSession(ctx context.Context, session *models.PaymentSession) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

func (r *bookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return conn(ctx, r.db).Create(booking).Error
}

func (r *bookingRepository) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := conn(ctx, r.db).Preload("Items").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) LockBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := conn(ctx, r.db).Find(&booking.Items, "booking_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) SaveBooking(ctx context.Context, booking *models.Booking) error {
	return conn(ctx, r.db).Omit("Items").Save(booking).Error
}

func (r *bookingRepository) CreateSession(ctx context.Context, session *models.PaymentSession) error {
	return conn(ctx, r.db).Create(session).Error
}

func (r *bookingRepository) GetSession(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	if err := conn(ctx, r.db).First(&session, "session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *bookingRepository) GetSessionByBooking(ctx context.Context, bookingID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	err := conn(ctx, r.db).
		Order("created_at DESC").
		First(&session, "booking_id = ?", bookingID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *bookingRepository) SaveSession(ctx context.Context, session *models.PaymentSession) error {
	return conn(ctx, r.db).Save(session).Error
}

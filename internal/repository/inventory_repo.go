package repository

import (
	"context"
	"time"

	"github.com/colleco/booking-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository persists the room-type ledger, the per-night booked
// counts and the hold table. Ledger and holds live behind one repository
// because every availability decision reads both inside one transaction.
type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetRoomType(ctx context.Context, name string) (*models.RoomType, error)
	// LockRoomType acquires a row-level lock on the room type; it must be
	// called inside WithTx and serializes concurrent check-then-write paths.
	LockRoomType(ctx context.Context, name string) (*models.RoomType, error)
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	SaveRoomType(ctx context.Context, rt *models.RoomType) error
	DeleteRoomType(ctx context.Context, name string) error
	ReplaceRoomTypes(ctx context.Context, roomTypes []models.RoomType, resetBooked bool) error

	BookedCounts(ctx context.Context, roomType string, dates []string) (map[string]int, error)
	AddBooked(ctx context.Context, roomType, date string, delta int) error
	ListRoomNights(ctx context.Context) ([]models.RoomNight, error)

	CreateHold(ctx context.Context, hold *models.Hold) error
	GetHold(ctx context.Context, id string) (*models.Hold, error)
	LockHold(ctx context.Context, id string) (*models.Hold, error)
	SaveHold(ctx context.Context, hold *models.Hold) error
	ListHolds(ctx context.Context) ([]models.Hold, error)
	ListActiveHolds(ctx context.Context, roomType string, now time.Time) ([]models.Hold, error)
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

func (r *inventoryRepository) GetRoomType(ctx context.Context, name string) (*models.RoomType, error) {
	var rt models.RoomType
	if err := conn(ctx, r.db).First(&rt, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *inventoryRepository) LockRoomType(ctx context.Context, name string) (*models.RoomType, error) {
	var rt models.RoomType
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rt, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *inventoryRepository) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var roomTypes []models.RoomType
	if err := conn(ctx, r.db).Order("name ASC").Find(&roomTypes).Error; err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (r *inventoryRepository) SaveRoomType(ctx context.Context, rt *models.RoomType) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_capacity", "price", "updated_at"}),
	}).Create(rt).Error
}

func (r *inventoryRepository) DeleteRoomType(ctx context.Context, name string) error {
	res := conn(ctx, r.db).Delete(&models.RoomType{}, "name = ?", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) ReplaceRoomTypes(ctx context.Context, roomTypes []models.RoomType, resetBooked bool) error {
	c := conn(ctx, r.db)
	if err := c.Where("1 = 1").Delete(&models.RoomType{}).Error; err != nil {
		return err
	}
	if resetBooked {
		if err := c.Where("1 = 1").Delete(&models.RoomNight{}).Error; err != nil {
			return err
		}
	}
	if len(roomTypes) == 0 {
		return nil
	}
	return c.Create(&roomTypes).Error
}

func (r *inventoryRepository) BookedCounts(ctx context.Context, roomType string, dates []string) (map[string]int, error) {
	var nights []models.RoomNight
	err := conn(ctx, r.db).
		Where("room_type = ? AND date IN ?", roomType, dates).
		Find(&nights).Error
	if err != nil {
		return nil, err
	}
	booked := make(map[string]int, len(nights))
	for _, n := range nights {
		booked[n.Date] = n.Booked
	}
	return booked, nil
}

// AddBooked upserts one ledger cell, flooring the count at zero so a release
// can never drive a cell negative.
func (r *inventoryRepository) AddBooked(ctx context.Context, roomType, date string, delta int) error {
	insert := delta
	if insert < 0 {
		insert = 0
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "room_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"booked": gorm.Expr("GREATEST(room_nights.booked + ?, 0)", delta),
		}),
	}).Create(&models.RoomNight{Date: date, RoomType: roomType, Booked: insert}).Error
}

func (r *inventoryRepository) ListRoomNights(ctx context.Context) ([]models.RoomNight, error) {
	var nights []models.RoomNight
	if err := conn(ctx, r.db).Order("date ASC, room_type ASC").Find(&nights).Error; err != nil {
		return nil, err
	}
	return nights, nil
}

func (r *inventoryRepository) CreateHold(ctx context.Context, hold *models.Hold) error {
	return conn(ctx, r.db).Create(hold).Error
}

func (r *inventoryRepository) GetHold(ctx context.Context, id string) (*models.Hold, error) {
	var hold models.Hold
	if err := conn(ctx, r.db).First(&hold, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *inventoryRepository) LockHold(ctx context.Context, id string) (*models.Hold, error) {
	var hold models.Hold
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&hold, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *inventoryRepository) SaveHold(ctx context.Context, hold *models.Hold) error {
	return conn(ctx, r.db).Save(hold).Error
}

func (r *inventoryRepository) ListHolds(ctx context.Context) ([]models.Hold, error) {
	var holds []models.Hold
	if err := conn(ctx, r.db).Order("created_at ASC").Find(&holds).Error; err != nil {
		return nil, err
	}
	return holds, nil
}

func (r *inventoryRepository) ListActiveHolds(ctx context.Context, roomType string, now time.Time) ([]models.Hold, error) {
	var holds []models.Hold
	err := conn(ctx, r.db).
		Where("room_type = ? AND consumed = false AND expires_at > ?", roomType, now).
		Find(&holds).Error
	if err != nil {
		return nil, err
	}
	return holds, nil
}

// DeleteExpiredHolds removes every unconsumed hold past its expiry in one
// statement; the sweeper calls this once per tick.
func (r *inventoryRepository) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).
		Where("consumed = false AND expires_at <= ?", now).
		Delete(&models.Hold{})
	return res.RowsAffected, res.Error
}

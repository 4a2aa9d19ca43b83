package database

import (
	"log"

	"github.com/colleco/booking-engine/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.RoomNight{},
		&models.Hold{},
		&models.Booking{},
		&models.BookingItem{},
		&models.PaymentSession{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// The sweeper and every availability read filter on this pair.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_holds_active
		ON holds (room_type, expires_at)
		WHERE consumed = false
	`)

	return db
}

package models

import "time"

type RoomType struct {
	Name          string    `gorm:"primaryKey" json:"name"`
	TotalCapacity int       `gorm:"not null" json:"total_capacity"`
	Price         float64   `gorm:"not null" json:"price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomNight is one cell of the booked-by-date table: how many rooms of a
// type are committed for one night. Dates use the YYYY-MM-DD form; EndDate
// ranges elsewhere are exclusive, so a RoomNight exists per occupied night.
type RoomNight struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Date     string `gorm:"type:varchar(10);not null;uniqueIndex:idx_room_night,priority:1" json:"date"`
	RoomType string `gorm:"not null;uniqueIndex:idx_room_night,priority:2" json:"room_type"`
	Booked   int    `gorm:"not null;default:0" json:"booked"`
}

type Hold struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	RoomType   string     `gorm:"index;not null" json:"room_type"`
	StartDate  string     `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate    string     `gorm:"type:varchar(10);not null" json:"end_date"`
	Qty        int        `gorm:"not null" json:"qty"`
	Consumed   bool       `gorm:"not null;default:false" json:"consumed"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `gorm:"index" json:"expires_at"`
}

// Active reports whether the hold still counts against availability.
func (h Hold) Active(now time.Time) bool {
	return !h.Consumed && h.ExpiresAt.After(now)
}

// Covers reports whether the hold reserves capacity on the given date.
func (h Hold) Covers(date string) bool {
	return h.StartDate <= date && date < h.EndDate
}

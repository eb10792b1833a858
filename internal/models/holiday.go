package models

import "time"

type SalonHoliday struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SalonID uint   `gorm:"uniqueIndex:idx_salon_holiday" json:"salon_id"`
	Date    string `gorm:"size:10;uniqueIndex:idx_salon_holiday" json:"date"`
	Label   string `gorm:"size:100" json:"label"`

	CreatedAt time.Time `json:"created_at"`
}

type StylistHoliday struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StylistID uint   `gorm:"uniqueIndex:idx_stylist_holiday" json:"stylist_id"`
	Date      string `gorm:"size:10;uniqueIndex:idx_stylist_holiday" json:"date"`
	Label     string `gorm:"size:100" json:"label"`

	CreatedAt time.Time `json:"created_at"`
}

// StylistBlockedSlot is a partial-day range; a stylist never holds both a
// full-day holiday and blocked ranges for the same date.
type StylistBlockedSlot struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StylistID uint   `gorm:"index:idx_stylist_blocked" json:"stylist_id"`
	Date      string `gorm:"size:10;index:idx_stylist_blocked" json:"date"`

	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`

	CreatedAt time.Time `json:"created_at"`
}

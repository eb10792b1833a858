package models

import "time"

// Customer records are per-salon and created lazily from bookings; guests
// become customers by phone number, no login involved.
type Customer struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex:idx_customer_phone" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex:idx_customer_phone" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

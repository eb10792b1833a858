package models

import "time"

// Payment is cash-only; the row is created inside the booking transaction
// and flips to completed when the money is collected at the counter.
type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex" json:"booking_id"`

	Method string  `gorm:"size:20;default:'cash'" json:"method"`
	Amount float64 `json:"amount"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	CollectedAt *time.Time `json:"collected_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	StylistID uint    `gorm:"index" json:"stylist_id"`
	Stylist   Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	// Local calendar date in the salon timezone, YYYY-MM-DD.
	Date string `gorm:"size:10;index" json:"date"`

	// Occupied interval is [start_minute, end_minute), minutes since midnight.
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`

	Status        string `gorm:"size:20;default:'confirmed'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	Services []BookingService `json:"services"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService snapshots a service line at booking time, so later edits
// to the catalog never change what a customer agreed to.
type BookingService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`
	ServiceID uint `json:"service_id"`

	Name        string  `gorm:"size:100" json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

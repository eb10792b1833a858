package models

import "time"

type Notification struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	CustomerID *uint `json:"customer_id"`
	UserID     *uint `json:"user_id"`

	Title string `gorm:"size:100" json:"title"`
	Body  string `gorm:"size:255" json:"body"`
	Data  string `gorm:"type:text" json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

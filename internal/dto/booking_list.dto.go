package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	StartMinute   int       `json:"start_minute"`
	EndMinute     int       `json:"end_minute"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CustomerName  string    `json:"customer_name"`
	StylistName   string    `json:"stylist_name"`
	ServiceNames  []string  `json:"service_names"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

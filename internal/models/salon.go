package models

import "time"

type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`

	Timezone string `gorm:"size:64;default:'Asia/Kolkata'" json:"timezone"`

	// Minutes since midnight. Close must stay after open; no overnight hours.
	OpenMinute  int `gorm:"default:600" json:"open_minute"`
	CloseMinute int `gorm:"default:1080" json:"close_minute"`

	SlotGranularityMin int `gorm:"default:30" json:"slot_granularity_min"`
	MinAdvanceMinutes  int `gorm:"default:40" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Service struct {
	ID    string  `gorm:"primaryKey;size:36" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Price float64 `json:"price"`

	// DurationMinutes is stored and served but slot generation runs on a
	// fixed 60-minute grid regardless of it, matching the mobile client.
	DurationMinutes int `gorm:"default:30" json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
}

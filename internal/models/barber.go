package models

import "time"

type Barber struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	Name   string  `gorm:"size:100;not null" json:"name"`
	Rating float64 `gorm:"default:5.0" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// ShopConfig is a singleton row (ID is always ConfigID). Saving replaces
// the whole document, there is no partial update.
type ShopConfig struct {
	ID        string `gorm:"primaryKey;size:20" json:"-"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	// WorkDays is modeled but not enforced by the slot generator.
	WorkDays string `gorm:"size:100" json:"work_days"`

	UpdatedAt time.Time `json:"updated_at"`
}

const ConfigID = "general"

func DefaultShopConfig() ShopConfig {
	return ShopConfig{
		ID:        ConfigID,
		OpenTime:  "09:00",
		CloseTime: "20:00",
		WorkDays:  "Lun,Mar,Mié,Jue,Vie,Sáb,Dom",
	}
}

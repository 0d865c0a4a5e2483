package models

import "time"

// CartSnapshot holds the serialized cart list stored under one storage key.
type CartSnapshot struct {
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartSnapshot) TableName() string { return "cart_snapshots" }

package model

import "time"

// SlotRecord is one named durable slot in the SQL backends
type SlotRecord struct {
	Name      string    `gorm:"primaryKey;size:255" json:"name"`
	Data      []byte    `gorm:"not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SlotRecord) TableName() string {
	return "storage_slots"
}

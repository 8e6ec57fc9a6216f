package model

import "time"

// StorageRecord is the row shape of the durable key-value store that
// backs the question bank, user stats and account records.
type StorageRecord struct {
	Key       string    `gorm:"primarykey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

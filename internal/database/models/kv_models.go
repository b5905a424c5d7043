package models

import "time"

// KVEntry is one key of the POS store when it is backed by postgres.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "pos_kv_entries"
}

// Package models contains the persistence models used by the key-value
// substrate, configured to work using GORM as the ORM.
package models

import (
	"time"
)

// Entry is one named value of the key-value substrate. Value holds the
// serialized collection exactly as the store adapter wrote it.
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the table name independently of the struct name.
func (Entry) TableName() string {
	return "kv_entries"
}

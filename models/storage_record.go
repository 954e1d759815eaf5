package models

import (
	"time"

	"gorm.io/datatypes"
)

// StorageRecord is one durable client-storage entry when storage is SQL backed.
type StorageRecord struct {
	Key       string         `gorm:"primaryKey;column:storage_key;size:191" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (StorageRecord) TableName() string { return "storage_records" }

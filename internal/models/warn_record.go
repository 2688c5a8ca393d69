package models

import "time"

// WarnRecord stores the cumulative warning count for a user in a group.
// At most one record exists per (group, user) pair; an absent record
// means a count of zero.
type WarnRecord struct {
	GroupID   int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Count     int   `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName sets the table name
func (WarnRecord) TableName() string {
	return "warn_records"
}

package models

import "time"

// SystemIdentity is recorded as AddedBy for automated denylist additions
const SystemIdentity = "system"

// DenylistEntry marks a user as excluded from a group. Join requests from
// excluded users are rejected automatically. At most one entry exists per
// (group, user) pair; re-adding replaces Reason and AddedBy but keeps the
// original CreatedAt.
type DenylistEntry struct {
	GroupID   int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Reason    string `gorm:"type:text"`
	AddedBy   string `gorm:"default:''"`
	CreatedAt time.Time
}

// TableName sets the table name
func (DenylistEntry) TableName() string {
	return "denylist_entries"
}

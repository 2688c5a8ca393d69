package storage

import (
	"tg-groupguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DenylistRepository handles database operations for DenylistEntry
type DenylistRepository struct {
	db *gorm.DB
}

// NewDenylistRepository creates a new DenylistRepository
func NewDenylistRepository(db *gorm.DB) *DenylistRepository {
	return &DenylistRepository{db: db}
}

// MigrateTable ensures the DenylistEntry table exists
func (r *DenylistRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.DenylistEntry{})
}

// Upsert inserts or replaces a denylist entry. On conflict only Reason
// and AddedBy change; CreatedAt keeps the original timestamp.
func (r *DenylistRepository) Upsert(entry *models.DenylistEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reason":   entry.Reason,
			"added_by": entry.AddedBy,
		}),
	}).Create(entry).Error
}

// IsDenylisted reports whether a (group, user) pair has a denylist entry
func (r *DenylistRepository) IsDenylisted(groupID, userID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.DenylistEntry{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	return count > 0, result.Error
}

// Get returns the entry for a (group, user) pair, nil if absent
func (r *DenylistRepository) Get(groupID, userID int64) (*models.DenylistEntry, error) {
	var entry models.DenylistEntry
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Take(&entry)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &entry, nil
}

// Remove deletes the entry for a (group, user) pair. Removing an absent
// entry is a no-op.
func (r *DenylistRepository) Remove(groupID, userID int64) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.DenylistEntry{}).Error
}

// ListByGroup returns all entries for a group, most recent first
func (r *DenylistRepository) ListByGroup(groupID int64) ([]models.DenylistEntry, error) {
	var entries []models.DenylistEntry
	result := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&entries)
	return entries, result.Error
}

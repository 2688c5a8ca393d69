package storage

import (
	"errors"
	"time"

	"tg-groupguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WarnRepository handles database operations for WarnRecord
type WarnRepository struct {
	db *gorm.DB
}

// NewWarnRepository creates a new WarnRepository
func NewWarnRepository(db *gorm.DB) *WarnRepository {
	return &WarnRepository{db: db}
}

// MigrateTable ensures the WarnRecord table exists
func (r *WarnRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.WarnRecord{})
}

// GetCount returns the current warning count for a (group, user) pair,
// zero if no record exists
func (r *WarnRepository) GetCount(groupID, userID int64) (int, error) {
	var record models.WarnRecord
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Take(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return record.Count, nil
}

// Increment atomically adds one warning for a (group, user) pair and
// returns the new count. The conflict-update write takes the row lock
// for the duration of the transaction, so concurrent increments for the
// same pair serialize and never observe the same next count; unrelated
// pairs do not block each other.
func (r *WarnRepository) Increment(groupID, userID int64) (int, error) {
	var count int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		record := &models.WarnRecord{GroupID: groupID, UserID: userID, Count: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": time.Now(),
			}),
		}).Create(record).Error; err != nil {
			return err
		}

		var current models.WarnRecord
		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Take(&current).Error; err != nil {
			return err
		}
		count = current.Count
		return nil
	})
	return count, err
}

// Clear removes the warning record for a (group, user) pair. Clearing a
// pair without a record is a no-op.
func (r *WarnRepository) Clear(groupID, userID int64) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.WarnRecord{}).Error
}

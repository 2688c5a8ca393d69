package storage

import (
	"time"

	"tg-groupguard/internal/models"

	"gorm.io/gorm"
)

// Store aggregates the repositories and provides the cross-table
// transition used when a pair becomes excluded
type Store struct {
	db       *gorm.DB
	Warns    *WarnRepository
	Denylist *DenylistRepository
}

// NewStore creates a Store over the given connection
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Warns:    NewWarnRepository(db),
		Denylist: NewDenylistRepository(db),
	}
}

// Migrate ensures both tables exist
func (s *Store) Migrate() error {
	if err := s.Warns.MigrateTable(); err != nil {
		return err
	}
	return s.Denylist.MigrateTable()
}

// Exclude records a (group, user) pair in the denylist and clears its
// warning count as a single transaction, so a later removal from the
// denylist starts counting from zero
func (s *Store) Exclude(groupID, userID int64, reason, addedBy string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.DenylistEntry{
			GroupID:   groupID,
			UserID:    userID,
			Reason:    reason,
			AddedBy:   addedBy,
			CreatedAt: time.Now(),
		}
		if err := NewDenylistRepository(tx).Upsert(entry); err != nil {
			return err
		}
		return NewWarnRepository(tx).Clear(groupID, userID)
	})
}

package models

import (
	"sync"
	"time"
)

type adminCacheKey struct {
	GroupID int64
	UserID  int64
}

// AdminCache remembers which users were recently confirmed as group
// administrators so that repeated commands do not hit the platform for
// every message. Entries expire after the configured number of minutes.
type AdminCache struct {
	entries    map[adminCacheKey]time.Time
	expireMins int
	mu         sync.RWMutex
}

// NewAdminCache creates a new admin role cache
func NewAdminCache(expireMins int) *AdminCache {
	cache := &AdminCache{
		entries:    make(map[adminCacheKey]time.Time),
		expireMins: expireMins,
	}

	// Start a goroutine to clean up expired entries
	go cache.cleanupExpired()

	return cache
}

// Add records a confirmed admin with expiration
func (c *AdminCache) Add(groupID, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[adminCacheKey{groupID, userID}] = time.Now().Add(time.Duration(c.expireMins) * time.Minute)
}

// Remove drops a cached admin role
func (c *AdminCache) Remove(groupID, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, adminCacheKey{groupID, userID})
}

// Contains reports whether the user has a non-expired admin confirmation
func (c *AdminCache) Contains(groupID, userID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	expiry, exists := c.entries[adminCacheKey{groupID, userID}]
	if !exists {
		return false
	}

	// If expired, remove and return false
	if time.Now().After(expiry) {
		// Use a goroutine to avoid deadlock while holding the read lock
		go c.Remove(groupID, userID)
		return false
	}

	return true
}

// cleanupExpired periodically removes expired entries
func (c *AdminCache) cleanupExpired() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, expiry := range c.entries {
			if now.After(expiry) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

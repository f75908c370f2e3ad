// Package cache provides a small in-memory TTL cache for dashboard
// aggregates, keyed by user.
package cache

import (
	"sync"
	"time"

	"mailsift/internal/models"
)

type item struct {
	data      *models.DashboardData
	expiresAt time.Time
}

// DashboardCache caches computed dashboard aggregates per user
type DashboardCache struct {
	items map[string]item
	ttl   time.Duration
	mutex sync.Mutex
}

// New creates a dashboard cache with the given entry lifetime
func New(ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

// Get returns the cached dashboard for a user, dropping expired entries
func (c *DashboardCache) Get(userID string) (*models.DashboardData, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.items[userID]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.items, userID)
		return nil, false
	}
	return entry.data, true
}

// Set stores a user's dashboard until the TTL elapses
func (c *DashboardCache) Set(userID string, data *models.DashboardData) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[userID] = item{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate removes a user's cached dashboard
func (c *DashboardCache) Invalidate(userID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, userID)
}

package service

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/metrics"
)

// offersCache is a short-lived snapshot cache for joined offer rows,
// keyed by the set of products being optimized. Optimization results are
// computed fresh on every call; only the storage reads are reused, so a
// catalog change is visible as soon as the snapshot expires.
type offersCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]offersCacheEntry
}

type offersCacheEntry struct {
	offers    []model.Offer
	expiresAt time.Time
}

func newOffersCache(ttl time.Duration) *offersCache {
	return &offersCache{
		ttl:     ttl,
		entries: make(map[string]offersCacheEntry),
	}
}

// signature builds a deterministic cache key from a product ID set.
func (c *offersCache) signature(productIDs []int64) string {
	ids := make([]int64, len(productIDs))
	copy(ids, productIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// Get returns the cached snapshot for the product set, if fresh.
func (c *offersCache) Get(productIDs []int64) ([]model.Offer, bool) {
	key := c.signature(productIDs)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		metrics.RecordOfferCacheOperation("get", "miss")
		return nil, false
	}
	metrics.RecordOfferCacheOperation("get", "hit")
	return entry.offers, true
}

// Set stores a snapshot for the product set.
func (c *offersCache) Set(productIDs []int64, offers []model.Offer) {
	key := c.signature(productIDs)

	c.mu.Lock()
	// Drop expired entries opportunistically to keep the map small.
	now := time.Now()
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = offersCacheEntry{offers: offers, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()

	metrics.RecordOfferCacheOperation("set", "success")
}

// Invalidate clears all snapshots. Called on catalog writes.
func (c *offersCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]offersCacheEntry)
	c.mu.Unlock()
}

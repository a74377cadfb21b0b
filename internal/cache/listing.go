package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	model "auction-hub/internal/models"

	"github.com/redis/go-redis/v9"
)

const openListingKey = "auctionhub:listing:open"

// ListingCache keeps the unfiltered home listing in Redis for a fixed TTL.
// Entries expire on their own; writes never invalidate them.
// A nil *ListingCache, or one without a client, is a cache that always misses.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListingCache creates a cache. rdb may be nil.
func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListingCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached listing and whether there was one.
func (c *ListingCache) Get(ctx context.Context) ([]model.Auction, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, openListingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var auctions []model.Auction
	if err := json.Unmarshal(raw, &auctions); err != nil {
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}
	return auctions, true, nil
}

// Set stores the listing for the cache TTL.
func (c *ListingCache) Set(ctx context.Context, auctions []model.Auction) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(auctions)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, openListingKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("listing cache set: %w", err)
	}
	return nil
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	profileKeyPrefix = "profile:%s"
	feedKeyPrefix    = "feed:%s"
)

const (
	ProfileTTL = 5 * time.Minute
	FeedTTL    = 30 * time.Second
)

// FeedPageLimit is the page size cached for anonymous feed reads. Other
// page sizes and authenticated reads go straight to the database.
const FeedPageLimit = 20

// ProfileKey is the cache key for a user profile looked up by handle.
func ProfileKey(handle string) string {
	return fmt.Sprintf(profileKeyPrefix, handle)
}

// FeedKey is the cache key for the first page of a feed of the given kind.
func FeedKey(kind string) string {
	return fmt.Sprintf(feedKeyPrefix, kind)
}

// Invalidate removes a key. A nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile removes the cached profile for a handle.
func InvalidateProfile(ctx context.Context, handle string) {
	Invalidate(ctx, ProfileKey(handle))
}

// InvalidateFeed removes the cached first page for a feed kind.
func InvalidateFeed(ctx context.Context, kind string) {
	Invalidate(ctx, FeedKey(kind))
}

// Package cache is the read-through store in front of album and artist
// lookups. Values are stored as JSON so the in-process and redis backends
// behave the same.
package cache

import (
	"context"
	"fmt"
)

type Cache interface {
	// Get decodes the value under key into dst and reports whether it was there.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

func AlbumIDKey(id uint) string { return fmt.Sprintf("albums:id:%d", id) }
func AlbumUUIDKey(token string) string { return "albums:uuid:" + token }
func ArtistIDKey(id uint) string { return fmt.Sprintf("artists:id:%d", id) }

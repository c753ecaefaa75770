// Package service holds the album and artist request handlers: validation,
// artist resolution, merge and the read-through cache around the stores.
//
// Reads take a cache ticket before touching the store and fill the cache only
// if no write invalidated the keys meanwhile. Writes take theirs before
// saving. The album and artist services must share one *cache.Coherent.
package service

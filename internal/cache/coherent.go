package cache

import (
	"context"
	"sync"

	"music-catalog/internal/platform/logger"

	"github.com/cespare/xxhash/v2"
)

// stripes is how many generation counters keys are spread over. Two keys on
// one stripe only cost each other a skipped fill.
const stripes = 64

// Coherent orders cache fills against invalidations inside one process.
//
// A reader takes a Ticket before it loads from the store and may fill the
// cache only if no write touched the keys' stripes since. Writers bump the
// stripes under the same lock they write the cache with, so a fill can never
// land after the eviction that should have removed it. Both services must
// share one Coherent. A nil *Coherent runs uncached.
type Coherent struct {
	c   Cache
	log *logger.Logger

	mu   sync.Mutex
	gens [stripes]uint64
}

// Ticket is the generation snapshot a read or write started from.
type Ticket struct {
	gens [stripes]uint64
}

func NewCoherent(c Cache, baseLog *logger.Logger) *Coherent {
	return &Coherent{c: c, log: baseLog.With("component", "cache")}
}

func stripe(key string) int {
	return int(xxhash.Sum64String(key) % stripes)
}

// Get reports a hit only when key is cached and decoded cleanly. Failures are
// logged and treated as misses.
func (k *Coherent) Get(ctx context.Context, key string, dst any) bool {
	if k == nil {
		return false
	}
	hit, err := k.c.Get(ctx, key, dst)
	if err != nil {
		k.log.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	return hit
}

// Begin snapshots the generations. Call it before reading the store.
func (k *Coherent) Begin() Ticket {
	if k == nil {
		return Ticket{}
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return Ticket{gens: k.gens}
}

// Fill caches a value a reader loaded after taking t. It reports false, and
// writes nothing, when a write touched any of keys since t.
func (k *Coherent) Fill(ctx context.Context, t Ticket, v any, keys ...string) bool {
	if k == nil {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.unchanged(t, keys) {
		return false
	}
	k.set(ctx, v, keys)
	return true
}

// Store caches a value a writer saved after taking t. When another write
// touched keys in between, neither value is known to be the latest and the
// keys are evicted instead.
func (k *Coherent) Store(ctx context.Context, t Ticket, v any, keys ...string) {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	fresh := k.unchanged(t, keys)
	k.bump(keys)
	if fresh {
		k.set(ctx, v, keys)
		return
	}
	k.delete(ctx, keys)
}

// Evict drops keys and refuses fills from any ticket taken before the call.
func (k *Coherent) Evict(ctx context.Context, keys ...string) {
	if k == nil || len(keys) == 0 {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bump(keys)
	k.delete(ctx, keys)
}

// unchanged, bump, set and delete must be called with mu held.
func (k *Coherent) unchanged(t Ticket, keys []string) bool {
	for _, key := range keys {
		if i := stripe(key); k.gens[i] != t.gens[i] {
			return false
		}
	}
	return true
}

func (k *Coherent) bump(keys []string) {
	for _, key := range keys {
		k.gens[stripe(key)]++
	}
}

func (k *Coherent) set(ctx context.Context, v any, keys []string) {
	for _, key := range keys {
		if err := k.c.Set(ctx, key, v); err != nil {
			k.log.Warn("cache set failed", "key", key, "error", err)
		}
	}
}

func (k *Coherent) delete(ctx context.Context, keys []string) {
	if err := k.c.Delete(ctx, keys...); err != nil {
		k.log.Warn("cache evict failed", "keys", keys, "error", err)
	}
}

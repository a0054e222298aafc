package auth

import (
	"sync"
	"time"
)

// Blacklist is the process-wide revocation registry for tokens invalidated
// before their natural expiry (logout, refresh rotation). Entries self-expire:
// once a token's own expiry passes, the codec already rejects it, so the
// entry is dead weight and is evicted lazily on lookup or by Sweep.
//
// Safe for concurrent use from any number of request goroutines.
type Blacklist struct {
	entries sync.Map // raw token string -> time.Time expiry
}

// NewBlacklist constructs an empty blacklist. One instance is created at
// process start and injected; it is never a package-level singleton.
func NewBlacklist() *Blacklist {
	return &Blacklist{}
}

// Add records the token as revoked through its own natural expiry.
// Idempotent upsert: re-adding overwrites the expiry, which is harmless
// since callers only ever pass the token's fixed expiry.
func (b *Blacklist) Add(token string, expiresAt time.Time) {
	if token == "" {
		return
	}
	b.entries.Store(token, expiresAt)
}

// Contains reports whether the token is currently revoked. An entry whose
// expiry has passed is evicted and reported absent.
func (b *Blacklist) Contains(token string) bool {
	val, ok := b.entries.Load(token)
	if !ok {
		return false
	}
	expiresAt, ok := val.(time.Time)
	if !ok || !expiresAt.After(time.Now()) {
		b.entries.Delete(token)
		return false
	}
	return true
}

// Sweep removes all expired entries and returns how many were purged.
// Contains alone is correctness-sufficient; Sweep only bounds memory for
// tokens that are never looked up again.
func (b *Blacklist) Sweep() int {
	now := time.Now()
	removed := 0
	b.entries.Range(func(key, val any) bool {
		expiresAt, ok := val.(time.Time)
		if !ok || !expiresAt.After(now) {
			b.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Len counts live entries, evicting expired ones as it goes.
func (b *Blacklist) Len() int {
	now := time.Now()
	n := 0
	b.entries.Range(func(key, val any) bool {
		expiresAt, ok := val.(time.Time)
		if !ok || !expiresAt.After(now) {
			b.entries.Delete(key)
			return true
		}
		n++
		return true
	})
	return n
}

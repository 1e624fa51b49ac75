// Package store implements the minimal keyspace map the command handlers
// sit on top of: lookup, add, delete, and a modification signal. The
// keyspace itself is out of scope per spec §1 ("referenced only by the
// interface it exposes") — this is the thinnest implementation that gives
// the command and blocking packages somewhere real to mutate.
package store

import (
	"sync/atomic"

	"github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/container/set"
)

// Kind tags what a keyspace Entry holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindList
	KindSet
)

// Entry is one keyspace slot: exactly one of List or Set is non-nil,
// matching Kind.
type Entry struct {
	Kind Kind
	List *list.List
	Set  *set.Set
}

// Database is a single in-memory keyspace. The dispatch goroutine (see
// internal/server) is its sole owner; nothing in this package takes a lock,
// matching the single-threaded-cooperative model of spec §5.
type Database struct {
	entries map[string]Entry
	dirty   atomic.Int64
}

// NewDatabase creates an empty keyspace.
func NewDatabase() *Database {
	return &Database{entries: make(map[string]Entry)}
}

// Lookup returns the entry stored under key, if any.
func (db *Database) Lookup(key string) (Entry, bool) {
	e, ok := db.entries[key]
	return e, ok
}

// Add stores (or replaces) the entry for key.
func (db *Database) Add(key string, e Entry) {
	db.entries[key] = e
}

// Delete removes key unconditionally.
func (db *Database) Delete(key string) {
	delete(db.entries, key)
}

// DeleteIfEmpty removes key if its container's size has reached zero.
// Handlers call this immediately after any operation that can shrink a
// container (spec §3 "Lifecycle").
func (db *Database) DeleteIfEmpty(key string, e Entry) {
	switch e.Kind {
	case KindList:
		if e.List.Len() == 0 {
			db.Delete(key)
		}
	case KindSet:
		if e.Set.Len() == 0 {
			db.Delete(key)
		}
	}
}

// SignalModified is a hook command handlers call after every mutation. It
// is a no-op here — no replication or keyspace-notification consumer is
// implemented — but the call sites exist so the control flow matches the
// spec exactly.
func (db *Database) SignalModified(key string) {}

// BumpDirty increments the dirty counter, which handlers bump after the
// mutations they apply. It counts modifications, not commands: one command
// may bump it more than once (e.g. once per value pushed).
func (db *Database) BumpDirty() { db.dirty.Add(1) }

// Dirty reports the current dirty counter value.
func (db *Database) Dirty() int64 { return db.dirty.Load() }

// Len reports the number of live keys, for the admin /stats endpoint.
func (db *Database) Len() int { return len(db.entries) }

// Keys returns a snapshot of all live keys, for the admin /debug/keys
// endpoint.
func (db *Database) Keys() []string {
	out := make([]string, 0, len(db.entries))
	for k := range db.entries {
		out = append(out, k)
	}
	return out
}

package store

import (
	"testing"

	"github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/obj"
)

func TestLookupAddDelete(t *testing.T) {
	db := NewDatabase()
	if _, ok := db.Lookup("k"); ok {
		t.Fatalf("empty db should not find k")
	}
	db.Add("k", Entry{Kind: KindList, List: list.New()})
	e, ok := db.Lookup("k")
	if !ok || e.Kind != KindList {
		t.Fatalf("Lookup after Add = %v, %v", e, ok)
	}
	db.Delete("k")
	if _, ok := db.Lookup("k"); ok {
		t.Fatalf("k should be gone after Delete")
	}
}

func TestDeleteIfEmpty(t *testing.T) {
	db := NewDatabase()
	l := list.New()
	l.Push(obj.FromBytes([]byte("v")), list.Head, list.Limits{MaxEntries: 128, MaxValue: 64})
	db.Add("k", Entry{Kind: KindList, List: l})
	l.Pop(list.Head)
	db.DeleteIfEmpty("k", Entry{Kind: KindList, List: l})
	if _, ok := db.Lookup("k"); ok {
		t.Fatalf("an emptied list's key should be removed")
	}
}

func TestDirtyCounter(t *testing.T) {
	db := NewDatabase()
	if db.Dirty() != 0 {
		t.Fatalf("fresh db should have dirty=0")
	}
	db.BumpDirty()
	db.BumpDirty()
	if db.Dirty() != 2 {
		t.Fatalf("Dirty() = %d, want 2", db.Dirty())
	}
}

func TestKeysSnapshot(t *testing.T) {
	db := NewDatabase()
	db.Add("a", Entry{Kind: KindList, List: list.New()})
	db.Add("b", Entry{Kind: KindList, List: list.New()})
	keys := db.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want 2 entries", keys)
	}
	if db.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", db.Len())
	}
}

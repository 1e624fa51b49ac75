package command

import (
	"github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/container/set"
	"github.com/corekv/corekv/internal/store"
)

// lookupList returns the List stored under key. ok is false if the key is
// absent; wrongType is true if the key holds a Set instead.
func lookupList(ctx *Context, key string) (l *list.List, ok, wrongType bool) {
	e, found := ctx.DB.Lookup(key)
	if !found {
		return nil, false, false
	}
	if e.Kind != store.KindList {
		return nil, false, true
	}
	return e.List, true, false
}

// lookupSet returns the Set stored under key. ok is false if the key is
// absent; wrongType is true if the key holds a List instead.
func lookupSet(ctx *Context, key string) (s *set.Set, ok, wrongType bool) {
	e, found := ctx.DB.Lookup(key)
	if !found {
		return nil, false, false
	}
	if e.Kind != store.KindSet {
		return nil, false, true
	}
	return e.Set, true, false
}

func storeList(ctx *Context, key string, l *list.List) {
	ctx.DB.Add(key, store.Entry{Kind: store.KindList, List: l})
}

func storeSet(ctx *Context, key string, s *set.Set) {
	ctx.DB.Add(key, store.Entry{Kind: store.KindSet, Set: s})
}

func deleteListIfEmpty(ctx *Context, key string, l *list.List) {
	ctx.DB.DeleteIfEmpty(key, store.Entry{Kind: store.KindList, List: l})
}

func deleteSetIfEmpty(ctx *Context, key string, s *set.Set) {
	ctx.DB.DeleteIfEmpty(key, store.Entry{Kind: store.KindSet, Set: s})
}

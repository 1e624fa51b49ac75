// Package config holds the runtime-mutable knobs that govern container
// encoding promotion (spec §6.4), read from the environment at startup with
// sensible defaults, mirroring the teacher repo's internal/env package.
package config

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/container/set"
)

const (
	defaultListMaxEntries = 128
	defaultListMaxValue   = 64
	defaultSetMaxIntset   = 512
)

// Limits is the live, runtime-mutable set of promotion thresholds. All
// fields are positive integers. Lowering a limit never retroactively
// promotes containers created under a looser one (spec §6.4).
type Limits struct {
	listMaxEntries atomic.Int64
	listMaxValue   atomic.Int64
	setMaxIntset   atomic.Int64
}

// New builds Limits from environment variables, falling back to defaults:
//   - COREKV_LIST_MAX_ZIPLIST_ENTRIES
//   - COREKV_LIST_MAX_ZIPLIST_VALUE
//   - COREKV_SET_MAX_INTSET_ENTRIES
func New() *Limits {
	l := &Limits{}
	l.listMaxEntries.Store(envInt("COREKV_LIST_MAX_ZIPLIST_ENTRIES", defaultListMaxEntries))
	l.listMaxValue.Store(envInt("COREKV_LIST_MAX_ZIPLIST_VALUE", defaultListMaxValue))
	l.setMaxIntset.Store(envInt("COREKV_SET_MAX_INTSET_ENTRIES", defaultSetMaxIntset))
	return l
}

func envInt(name string, def int64) int64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// List returns the current list promotion thresholds.
func (l *Limits) List() list.Limits {
	return list.Limits{
		MaxEntries: int(l.listMaxEntries.Load()),
		MaxValue:   int(l.listMaxValue.Load()),
	}
}

// Set returns the current set promotion threshold.
func (l *Limits) Set() set.Limits {
	return set.Limits{MaxIntsetEntries: int(l.setMaxIntset.Load())}
}

// SetListMaxEntries updates the entry-count threshold at runtime.
func (l *Limits) SetListMaxEntries(n int64) { l.listMaxEntries.Store(n) }

// SetListMaxValue updates the value-length threshold at runtime.
func (l *Limits) SetListMaxValue(n int64) { l.listMaxValue.Store(n) }

// SetSetMaxIntsetEntries updates the intset-count threshold at runtime.
func (l *Limits) SetSetMaxIntsetEntries(n int64) { l.setMaxIntset.Store(n) }

// Package command implements the handlers for every command in spec §6.1:
// looking up the key, validating its type, invoking container primitives,
// emitting a reply, and signaling modification. Everything here runs on the
// single dispatch goroutine (internal/server) — no locking, per spec §5.
package command

import (
	"time"

	"github.com/corekv/corekv/internal/blocking"
	"github.com/corekv/corekv/internal/config"
	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
	"go.uber.org/zap"
)

// Context bundles everything a handler needs: the keyspace, the blocking
// registry, the live promotion thresholds, the reply writer, and the
// identity/transaction state of the client issuing the command.
type Context struct {
	DB     *store.Database
	Reg    *blocking.Registry
	Limits *config.Limits
	Log    *zap.Logger

	ClientID blocking.ClientID
	InTxn    bool

	W *resp.Writer

	// Block is set by a handler that must defer its reply (BLPOP/BRPOP/
	// BRPOPLPUSH finding every key empty). The server layer, seeing it set
	// after a handler returns, performs the actual suspend/resume dance —
	// the handler itself never blocks.
	Block *BlockSpec

	// Rewritten is set by SPOP to the deterministic SREM it must be logged
	// as instead of the nondeterministic SPOP itself (spec §4.4, tested by
	// spec §8 property 8). Replication/AOF are out of scope, so nothing
	// consumes this outside of tests — it exists so the rewrite is
	// observable at all.
	Rewritten [][]byte
}

// BlockSpec describes a deferred blocking-pop registration.
type BlockSpec struct {
	Keys     []string
	Deadline time.Time // zero = infinite
	Target   string    // "" = plain pop, no redirect
}

// Handler implements one command. It must not block; see BlockSpec above
// for how blocking commands defer their reply instead.
type Handler func(ctx *Context, args [][]byte)

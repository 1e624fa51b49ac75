package command

import "strings"

// Table maps an upper-cased command name to its handler. It is the
// dispatcher's routing table (spec §2 "the dispatcher routes a decoded
// command to a handler").
var Table = map[string]Handler{
	"LPUSH":      LPush,
	"RPUSH":      RPush,
	"LPUSHX":     LPushX,
	"RPUSHX":     RPushX,
	"LINSERT":    LInsert,
	"LPOP":       LPop,
	"RPOP":       RPop,
	"LLEN":       LLen,
	"LINDEX":     LIndex,
	"LSET":       LSet,
	"LRANGE":     LRange,
	"LTRIM":      LTrim,
	"LREM":       LRem,
	"RPOPLPUSH":  RPopLPush,
	"BLPOP":      BLPop,
	"BRPOP":      BRPop,
	"BRPOPLPUSH": BRPopLPush,

	"SADD":        SAdd,
	"SREM":        SRem,
	"SMOVE":       SMove,
	"SISMEMBER":   SIsMember,
	"SCARD":       SCard,
	"SPOP":        SPop,
	"SRANDMEMBER": SRandMember,
	"SINTER":      SInter,
	"SINTERSTORE": SInterStore,
	"SUNION":      SUnion,
	"SUNIONSTORE": SUnionStore,
	"SDIFF":       SDiff,
	"SDIFFSTORE":  SDiffStore,

	"DEBUG":    DebugObject,
	"FLUSHALL": FlushAll,
}

// Lookup resolves a command name, case-insensitively, to its handler.
func Lookup(name string) (Handler, bool) {
	h, ok := Table[strings.ToUpper(name)]
	return h, ok
}

// Execute routes args to its handler, writing an unknown-command error
// through ctx.W if no handler matches. Command name matching is
// case-insensitive. Handlers assume len(args) >= 1.
func Execute(ctx *Context, args [][]byte) {
	if len(args) == 0 {
		return
	}
	h, ok := Lookup(string(args[0]))
	if !ok {
		ctx.W.WriteError("ERR unknown command '" + string(args[0]) + "'")
		return
	}
	h(ctx, args)
}

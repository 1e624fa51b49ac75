package command

import "errors"

// Sentinel errors for the taxonomy in spec §7. Most map directly to a
// resp shared singleton; bad-timeout needs its own text per key.
var (
	ErrWrongType   = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrOutOfRange  = errors.New("ERR index out of range")
	ErrNoSuchKey   = errors.New("ERR no such key")
	ErrSyntax      = errors.New("ERR syntax error")
	ErrBadTimeout  = errors.New("ERR timeout is not an integer or out of range")
	ErrNegTimeout  = errors.New("ERR timeout is negative")
)

func writeBadTimeout(ctx *Context, negative bool) {
	if negative {
		ctx.W.WriteError(ErrNegTimeout.Error())
		return
	}
	ctx.W.WriteError(ErrBadTimeout.Error())
}

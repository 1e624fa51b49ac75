package command

import (
	"fmt"

	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
)

// DebugObject implements DEBUG OBJECT key (spec §6.5): reports the key's
// current encoding and length, so tests and the admin surface can observe
// promotion without reaching into package-internal state.
func DebugObject(ctx *Context, args [][]byte) {
	if len(args) != 3 || string(args[1]) != "OBJECT" {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	e, ok := ctx.DB.Lookup(string(args[2]))
	if !ok {
		ctx.W.WriteRaw(resp.NoKeyErr)
		return
	}
	switch e.Kind {
	case store.KindList:
		ctx.W.WriteBulkString(fmt.Sprintf("encoding:%s length:%d", e.List.Encoding(), e.List.Len()))
	case store.KindSet:
		ctx.W.WriteBulkString(fmt.Sprintf("encoding:%s length:%d", e.Set.Encoding(), e.Set.Len()))
	}
}

// FlushAll implements FLUSHALL: wipes the keyspace. It is routed from the
// command table like any other command, and the admin HTTP endpoint submits
// it through the dispatch goroutine as well.
func FlushAll(ctx *Context, args [][]byte) {
	for _, k := range ctx.DB.Keys() {
		ctx.DB.Delete(k)
	}
	ctx.W.WriteRaw(resp.OK)
}

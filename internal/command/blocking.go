package command

import (
	"time"

	clist "github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/resp"
)

// BLPop and BRPop implement BLPOP/BRPOP key [key ...] timeout.
var BLPop = blockingPopCmd(clist.Head)
var BRPop = blockingPopCmd(clist.Tail)

func blockingPopCmd(end clist.End) Handler {
	return func(ctx *Context, args [][]byte) {
		if len(args) < 3 {
			ctx.W.WriteError(ErrSyntax.Error())
			return
		}
		keys := args[1 : len(args)-1]
		deadline, ok, negative := parseTimeout(args[len(args)-1])
		if !ok {
			writeBadTimeout(ctx, negative)
			return
		}

		// Step 2: any input key already holding a non-empty list pops
		// immediately, in the order the keys were listed.
		for _, k := range keys {
			key := string(k)
			l, exists, wrongType := lookupList(ctx, key)
			if wrongType {
				ctx.W.WriteRaw(resp.WrongTypeErr)
				return
			}
			if exists && l.Len() > 0 {
				v := l.Pop(end)
				deleteListIfEmpty(ctx, key, l)
				ctx.DB.SignalModified(key)
				ctx.DB.BumpDirty()
				ctx.W.WriteMultiBulkLen(2)
				ctx.W.WriteBulkString(key)
				ctx.W.WriteBulk(v.Bytes())
				return
			}
		}

		// Step 3: blocking inside a transaction is forbidden — it must
		// complete atomically, so fail fast with a nil multi-bulk.
		if ctx.InTxn {
			ctx.W.WriteRaw(resp.NilMultiBulk)
			return
		}

		// Step 4: register and let the server layer suspend this client.
		strKeys := make([]string, len(keys))
		for i, k := range keys {
			strKeys[i] = string(k)
		}
		ctx.Block = &BlockSpec{Keys: strKeys, Deadline: deadline}
	}
}

// BRPopLPush implements BRPOPLPUSH src dst timeout.
func BRPopLPush(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	srcKey := string(args[1])
	dstKey := string(args[2])
	deadline, ok, negative := parseTimeout(args[3])
	if !ok {
		writeBadTimeout(ctx, negative)
		return
	}

	l, exists, wrongType := lookupList(ctx, srcKey)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if exists && l.Len() > 0 {
		RPopLPush(ctx, [][]byte{[]byte("RPOPLPUSH"), args[1], args[2]})
		return
	}

	if ctx.InTxn {
		ctx.W.WriteRaw(resp.NilMultiBulk)
		return
	}

	ctx.Block = &BlockSpec{Keys: []string{srcKey}, Deadline: deadline, Target: dstKey}
}

// parseTimeout normalizes the trailing timeout argument: a non-negative
// integer number of seconds, 0 meaning infinite. ok is false if the value
// isn't an integer at all or is negative; negative distinguishes the two
// error replies.
func parseTimeout(b []byte) (deadline time.Time, ok bool, negative bool) {
	secs, err := parseInt(b)
	if err != nil {
		return time.Time{}, false, false
	}
	if secs < 0 {
		return time.Time{}, false, true
	}
	if secs == 0 {
		return time.Time{}, true, false
	}
	return time.Now().Add(time.Duration(secs) * time.Second), true, false
}

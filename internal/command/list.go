package command

import (
	clist "github.com/corekv/corekv/internal/container/list"
	"github.com/corekv/corekv/internal/obj"
	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
)

const maxPushRecursion = 32

// push is the single insertion point for LPUSH/RPUSH/RPOPLPUSH/the
// blocking pop-and-push target: it consults the blocking registry before
// touching the container (spec §4.2) and never creates the key when
// delivery succeeds (spec §9 open question — preserved verbatim).
func push(ctx *Context, key string, value *obj.Object, end clist.End) (length int, wrongType bool) {
	return pushDepth(ctx, key, value, end, 0)
}

func pushDepth(ctx *Context, key string, value *obj.Object, end clist.End, depth int) (length int, wrongType bool) {
	e, found := ctx.DB.Lookup(key)
	if found && e.Kind != store.KindList {
		return 0, true
	}

	if depth < maxPushRecursion && ctx.Reg.HasWaiters(key) {
		delivered := ctx.Reg.DeliverOnPush(key, value, func(targetKey string, v *obj.Object) (int, bool) {
			return pushDepth(ctx, targetKey, v, clist.Head, depth+1)
		})
		if delivered {
			ctx.DB.SignalModified(key)
			ctx.DB.BumpDirty()
			if found {
				return e.List.Len(), false
			}
			return 1, false
		}
	}

	var l *clist.List
	if found {
		l = e.List
	} else {
		l = clist.New()
	}
	l.Push(value, end, ctx.Limits.List())
	storeList(ctx, key, l)
	ctx.DB.SignalModified(key)
	ctx.DB.BumpDirty()
	return l.Len(), false
}

func pushCmd(end clist.End) Handler {
	return func(ctx *Context, args [][]byte) {
		if len(args) < 3 {
			ctx.W.WriteError(ErrSyntax.Error())
			return
		}
		key := string(args[1])
		var length int
		var wrongType bool
		for _, v := range args[2:] {
			length, wrongType = push(ctx, key, obj.FromBytes(v), end)
			if wrongType {
				ctx.W.WriteRaw(resp.WrongTypeErr)
				return
			}
		}
		ctx.W.WriteInt(int64(length))
	}
}

func pushxCmd(end clist.End) Handler {
	return func(ctx *Context, args [][]byte) {
		if len(args) < 3 {
			ctx.W.WriteError(ErrSyntax.Error())
			return
		}
		key := string(args[1])
		l, ok, wrongType := lookupList(ctx, key)
		if wrongType {
			ctx.W.WriteRaw(resp.WrongTypeErr)
			return
		}
		if !ok {
			ctx.W.WriteRaw(resp.Zero)
			return
		}
		lim := ctx.Limits.List()
		for _, v := range args[2:] {
			l.Push(obj.FromBytes(v), end, lim)
		}
		ctx.DB.SignalModified(key)
		ctx.DB.BumpDirty()
		ctx.W.WriteInt(int64(l.Len()))
	}
}

// LPush and RPush are the LPUSH/RPUSH handlers.
var LPush = pushCmd(clist.Head)
var RPush = pushCmd(clist.Tail)

// LPushX and RPushX are the LPUSHX/RPUSHX handlers.
var LPushX = pushxCmd(clist.Head)
var RPushX = pushxCmd(clist.Tail)

// LInsert implements LINSERT key BEFORE|AFTER pivot value.
func LInsert(ctx *Context, args [][]byte) {
	if len(args) != 5 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	var before bool
	switch string(args[2]) {
	case "BEFORE", "before":
		before = true
	case "AFTER", "after":
		before = false
	default:
		ctx.W.WriteRaw(resp.SyntaxErr)
		return
	}
	l, ok, wrongType := lookupList(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	value := obj.FromBytes(args[4])
	pivot := obj.FromBytes(args[3])
	// Speculatively promote for value's own shape before scanning: the
	// scan and the insert cannot straddle an encoding change (spec §4.2).
	l.PromoteForValue(value, ctx.Limits.List())
	if l.InsertRelative(before, pivot, value) == clist.InsertNotFound {
		ctx.W.WriteRaw(resp.NegativeOne)
		return
	}
	ctx.DB.SignalModified(key)
	ctx.DB.BumpDirty()
	ctx.W.WriteInt(int64(l.Len()))
}

func popCmd(end clist.End) Handler {
	return func(ctx *Context, args [][]byte) {
		if len(args) != 2 {
			ctx.W.WriteError(ErrSyntax.Error())
			return
		}
		key := string(args[1])
		l, ok, wrongType := lookupList(ctx, key)
		if wrongType {
			ctx.W.WriteRaw(resp.WrongTypeErr)
			return
		}
		if !ok {
			ctx.W.WriteRaw(resp.NilBulk)
			return
		}
		v := l.Pop(end)
		if v == nil {
			ctx.W.WriteRaw(resp.NilBulk)
			return
		}
		deleteListIfEmpty(ctx, key, l)
		ctx.DB.SignalModified(key)
		ctx.DB.BumpDirty()
		ctx.W.WriteBulk(v.Bytes())
	}
}

// LPop and RPop are the LPOP/RPOP handlers.
var LPop = popCmd(clist.Head)
var RPop = popCmd(clist.Tail)

// LLen implements LLEN key.
func LLen(ctx *Context, args [][]byte) {
	if len(args) != 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	l, ok, wrongType := lookupList(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	ctx.W.WriteInt(int64(l.Len()))
}

// LIndex implements LINDEX key index.
func LIndex(ctx *Context, args [][]byte) {
	if len(args) != 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	l, ok, wrongType := lookupList(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	i, err := parseInt(args[2])
	if err != nil {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	v := l.Index(i)
	if v == nil {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	ctx.W.WriteBulk(v.Bytes())
}

// LSet implements LSET key index value.
func LSet(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	l, ok, wrongType := lookupList(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.NoKeyErr)
		return
	}
	i, err := parseInt(args[2])
	if err != nil {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	if !l.Set(i, obj.FromBytes(args[3]), ctx.Limits.List()) {
		ctx.W.WriteRaw(resp.OutOfRangeErr)
		return
	}
	ctx.DB.SignalModified(key)
	ctx.DB.BumpDirty()
	ctx.W.WriteRaw(resp.OK)
}

// normalizeRange applies the signed-index clamp rules shared by LRANGE and
// LTRIM (spec §4.2): negatives resolve against length, start clamps to 0,
// end clamps to length-1, and start>end or start>=length yields an empty
// range.
func normalizeRange(start, end, length int) (int, int, bool) {
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 {
		start = 0
	}
	if start >= length || start > end {
		return 0, 0, false
	}
	if end >= length {
		end = length - 1
	}
	return start, end, true
}

// LRange implements LRANGE key start end.
func LRange(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	l, ok, wrongType := lookupList(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.EmptyMulti)
		return
	}
	start, err1 := parseInt(args[2])
	end, err2 := parseInt(args[3])
	if err1 != nil || err2 != nil {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	start, end, ok = normalizeRange(start, end, l.Len())
	if !ok {
		ctx.W.WriteRaw(resp.EmptyMulti)
		return
	}
	vals := l.Range(start, end)
	ctx.W.WriteMultiBulkLen(len(vals))
	for _, v := range vals {
		ctx.W.WriteBulk(v.Bytes())
	}
}

// LTrim implements LTRIM key start end. Replies OK even for a missing key
// (spec §9 open question, preserved verbatim).
func LTrim(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	l, ok, wrongType := lookupList(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.OK)
		return
	}
	start, err1 := parseInt(args[2])
	end, err2 := parseInt(args[3])
	if err1 != nil || err2 != nil {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	var normOk bool
	start, end, normOk = normalizeRange(start, end, l.Len())
	if !normOk {
		l.Clear()
	} else {
		l.Trim(start, end)
	}
	deleteListIfEmpty(ctx, key, l)
	ctx.DB.SignalModified(key)
	ctx.DB.BumpDirty()
	ctx.W.WriteRaw(resp.OK)
}

// LRem implements LREM key count value.
func LRem(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	l, ok, wrongType := lookupList(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	count, err := parseInt(args[2])
	if err != nil {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	removed := l.RemoveMatching(count, obj.FromBytes(args[3]))
	if removed > 0 {
		deleteListIfEmpty(ctx, key, l)
		ctx.DB.SignalModified(key)
		ctx.DB.BumpDirty()
	}
	ctx.W.WriteInt(int64(removed))
}

// RPopLPush implements RPOPLPUSH src dst: pop the tail of src, push it onto
// the head of dst (creating dst if missing), atomically — if dst exists
// with the wrong type, src is left untouched. The push step is routed
// through dst's own blocking registry (spec §4.2).
func RPopLPush(ctx *Context, args [][]byte) {
	if len(args) != 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	srcKey, dstKey := string(args[1]), string(args[2])

	src, ok, wrongType := lookupList(ctx, srcKey)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	if dstEntry, found := ctx.DB.Lookup(dstKey); found && dstEntry.Kind != store.KindList {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}

	v := src.Pop(clist.Tail)
	if v == nil {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	deleteListIfEmpty(ctx, srcKey, src)
	ctx.DB.SignalModified(srcKey)

	push(ctx, dstKey, v, clist.Head)
	ctx.DB.BumpDirty()
	ctx.W.WriteBulk(v.Bytes())
}

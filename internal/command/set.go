package command

import (
	cset "github.com/corekv/corekv/internal/container/set"
	"github.com/corekv/corekv/internal/obj"
	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
)

// SAdd implements SADD key member [member ...].
func SAdd(ctx *Context, args [][]byte) {
	if len(args) < 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	s, ok, wrongType := lookupSet(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	lim := ctx.Limits.Set()
	added := 0
	for _, raw := range args[2:] {
		v := obj.FromBytes(raw)
		if !ok {
			s = cset.New(v)
			ok = true
		}
		if s.Add(v, lim) {
			added++
		}
	}
	storeSet(ctx, key, s)
	if added > 0 {
		ctx.DB.SignalModified(key)
		ctx.DB.BumpDirty()
	}
	ctx.W.WriteInt(int64(added))
}

// SRem implements SREM key member [member ...].
func SRem(ctx *Context, args [][]byte) {
	if len(args) < 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	s, ok, wrongType := lookupSet(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	removed := 0
	for _, raw := range args[2:] {
		if s.Remove(obj.FromBytes(raw)) {
			removed++
		}
	}
	if removed > 0 {
		deleteSetIfEmpty(ctx, key, s)
		ctx.DB.SignalModified(key)
		ctx.DB.BumpDirty()
	}
	ctx.W.WriteInt(int64(removed))
}

// SIsMember implements SISMEMBER key member.
func SIsMember(ctx *Context, args [][]byte) {
	if len(args) != 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	s, ok, wrongType := lookupSet(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok || !s.Find(obj.FromBytes(args[2])) {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	ctx.W.WriteRaw(resp.One)
}

// SCard implements SCARD key.
func SCard(ctx *Context, args [][]byte) {
	if len(args) != 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	s, ok, wrongType := lookupSet(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	ctx.W.WriteInt(int64(s.Len()))
}

// SMove implements SMOVE src dst member.
func SMove(ctx *Context, args [][]byte) {
	if len(args) != 4 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	srcKey, dstKey := string(args[1]), string(args[2])
	value := obj.FromBytes(args[3])

	src, ok, wrongType := lookupSet(ctx, srcKey)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok || !src.Find(value) {
		ctx.W.WriteRaw(resp.Zero)
		return
	}
	if srcKey == dstKey {
		// No-op move onto itself: element already present, reply 1.
		ctx.W.WriteRaw(resp.One)
		return
	}
	if dstEntry, found := ctx.DB.Lookup(dstKey); found && dstEntry.Kind != store.KindSet {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}

	src.Remove(value)
	deleteSetIfEmpty(ctx, srcKey, src)

	dst, dstOK, _ := lookupSet(ctx, dstKey)
	if !dstOK {
		dst = cset.New(value)
	}
	dst.Add(value, ctx.Limits.Set())
	storeSet(ctx, dstKey, dst)

	ctx.DB.SignalModified(srcKey)
	ctx.DB.SignalModified(dstKey)
	ctx.DB.BumpDirty()
	ctx.W.WriteRaw(resp.One)
}

// SPop implements SPOP key: picks a random element, removes it, and rewrites
// itself to SREM key element (spec §4.4) so replication/AOF logging — were
// it wired — would record a deterministic command.
func SPop(ctx *Context, args [][]byte) {
	if len(args) != 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	key := string(args[1])
	s, ok, wrongType := lookupSet(ctx, key)
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	v := s.Random()
	if v == nil {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	s.Remove(v)
	deleteSetIfEmpty(ctx, key, s)
	ctx.DB.SignalModified(key)
	ctx.DB.BumpDirty()
	ctx.Rewritten = [][]byte{[]byte("SREM"), args[1], v.Bytes()}
	ctx.W.WriteBulk(v.Bytes())
}

// SRandMember implements SRANDMEMBER key: like SPop but non-destructive.
func SRandMember(ctx *Context, args [][]byte) {
	if len(args) != 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	s, ok, wrongType := lookupSet(ctx, string(args[1]))
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	if !ok {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	v := s.Random()
	if v == nil {
		ctx.W.WriteRaw(resp.NilBulk)
		return
	}
	ctx.W.WriteBulk(v.Bytes())
}

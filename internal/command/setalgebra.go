package command

import (
	"sort"

	cset "github.com/corekv/corekv/internal/container/set"
	"github.com/corekv/corekv/internal/obj"
	"github.com/corekv/corekv/internal/resp"
)

// resolveSets looks up every key as a Set. wrongType is true if any key
// holds a non-Set value. missing reports which keys were absent — callers
// treat that differently (SINTER short-circuits to empty, SUNION/SDIFF
// treat a missing source as an empty set).
func resolveSets(ctx *Context, keys [][]byte) (sets []*cset.Set, missing []bool, wrongType bool) {
	sets = make([]*cset.Set, len(keys))
	missing = make([]bool, len(keys))
	for i, k := range keys {
		s, ok, wt := lookupSet(ctx, string(k))
		if wt {
			return nil, nil, true
		}
		if !ok {
			missing[i] = true
			continue
		}
		sets[i] = s
	}
	return sets, missing, false
}

// sinter computes the intersection by sorting sources ascending by
// cardinality and scanning only the smallest, testing membership in every
// other source (spec §4.4).
func sinter(ctx *Context, keys [][]byte) (result []*obj.Object, wrongType bool) {
	sets, missing, wt := resolveSets(ctx, keys)
	if wt {
		return nil, true
	}
	for _, m := range missing {
		if m {
			return nil, false
		}
	}
	ordered := append([]*cset.Set(nil), sets...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Len() < ordered[j].Len() })

	smallest := ordered[0]
	others := ordered[1:]
	it := smallest.NewIterator()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		member := true
		for _, s := range others {
			if !s.FindLiteral(&lit) {
				member = false
				break
			}
		}
		if member {
			result = append(result, lit.AsObject())
		}
		lit.Release()
	}
	return result, false
}

// SInter implements SINTER key [key ...].
func SInter(ctx *Context, args [][]byte) {
	if len(args) < 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	result, wrongType := sinter(ctx, args[1:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	ctx.W.WriteMultiBulkLen(len(result))
	for _, v := range result {
		ctx.W.WriteBulk(v.Bytes())
	}
}

// SInterStore implements SINTERSTORE dst key [key ...]. An empty result
// deletes the destination key.
func SInterStore(ctx *Context, args [][]byte) {
	if len(args) < 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	dstKey := string(args[1])
	result, wrongType := sinter(ctx, args[2:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	storeAlgebraResult(ctx, dstKey, result)
	ctx.W.WriteInt(int64(len(result)))
}

// sunion adds every element of every source into a fresh result set.
func sunion(ctx *Context, keys [][]byte) (result []*obj.Object, wrongType bool) {
	sets, _, wt := resolveSets(ctx, keys)
	if wt {
		return nil, true
	}
	acc := cset.NewEmpty()
	lim := ctx.Limits.Set()
	for _, s := range sets {
		if s == nil {
			continue
		}
		it := s.NewIterator()
		for {
			lit, ok := it.Next()
			if !ok {
				break
			}
			acc.Add(lit.AsObject(), lim)
			lit.Release()
		}
	}
	return drainSet(acc), false
}

// SUnion implements SUNION key [key ...].
func SUnion(ctx *Context, args [][]byte) {
	if len(args) < 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	result, wrongType := sunion(ctx, args[1:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	ctx.W.WriteMultiBulkLen(len(result))
	for _, v := range result {
		ctx.W.WriteBulk(v.Bytes())
	}
}

// SUnionStore implements SUNIONSTORE dst key [key ...].
func SUnionStore(ctx *Context, args [][]byte) {
	if len(args) < 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	dstKey := string(args[1])
	result, wrongType := sunion(ctx, args[2:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	storeAlgebraResult(ctx, dstKey, result)
	ctx.W.WriteInt(int64(len(result)))
}

// sdiff adds every element of sources[0], then removes every element found
// in sources[1:], short-circuiting once the running cardinality hits zero
// (spec §4.4).
func sdiff(ctx *Context, keys [][]byte) (result []*obj.Object, wrongType bool) {
	sets, _, wt := resolveSets(ctx, keys)
	if wt {
		return nil, true
	}
	acc := cset.NewEmpty()
	lim := ctx.Limits.Set()
	if sets[0] != nil {
		it := sets[0].NewIterator()
		for {
			lit, ok := it.Next()
			if !ok {
				break
			}
			acc.Add(lit.AsObject(), lim)
			lit.Release()
		}
	}
	for _, s := range sets[1:] {
		if acc.Len() == 0 {
			break
		}
		if s == nil {
			continue
		}
		it := s.NewIterator()
		for {
			lit, ok := it.Next()
			if !ok {
				break
			}
			acc.Remove(lit.AsObject())
			lit.Release()
		}
	}
	return drainSet(acc), false
}

// SDiff implements SDIFF key [key ...].
func SDiff(ctx *Context, args [][]byte) {
	if len(args) < 2 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	result, wrongType := sdiff(ctx, args[1:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	ctx.W.WriteMultiBulkLen(len(result))
	for _, v := range result {
		ctx.W.WriteBulk(v.Bytes())
	}
}

// SDiffStore implements SDIFFSTORE dst key [key ...].
func SDiffStore(ctx *Context, args [][]byte) {
	if len(args) < 3 {
		ctx.W.WriteError(ErrSyntax.Error())
		return
	}
	dstKey := string(args[1])
	result, wrongType := sdiff(ctx, args[2:])
	if wrongType {
		ctx.W.WriteRaw(resp.WrongTypeErr)
		return
	}
	storeAlgebraResult(ctx, dstKey, result)
	ctx.W.WriteInt(int64(len(result)))
}

func drainSet(s *cset.Set) []*obj.Object {
	out := make([]*obj.Object, 0, s.Len())
	it := s.NewIterator()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, lit.AsObject())
		lit.Release()
	}
	return out
}

// storeAlgebraResult replaces dstKey with result, deleting the key if
// result is empty (the STORE variants' common tail, spec §4.4).
func storeAlgebraResult(ctx *Context, dstKey string, result []*obj.Object) {
	if len(result) == 0 {
		ctx.DB.Delete(dstKey)
		ctx.DB.SignalModified(dstKey)
		ctx.DB.BumpDirty()
		return
	}
	s := cset.New(result[0])
	lim := ctx.Limits.Set()
	for _, v := range result {
		s.Add(v, lim)
	}
	storeSet(ctx, dstKey, s)
	ctx.DB.SignalModified(dstKey)
	ctx.DB.BumpDirty()
}

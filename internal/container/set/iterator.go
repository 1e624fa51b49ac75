package set

import "github.com/corekv/corekv/internal/obj"

// Iterator is a lazy forward scan over a Set's members, yielding Literals so
// IntSet scans never force an Object allocation per element.
type Iterator struct {
	ints    []int64
	intIdx  int
	hashVal []*obj.Object
	hashIdx int
}

// NewIterator returns a forward iterator over the set's current members.
// Like the List iterator, it is invalidated by any mutation of s. HashSet
// iteration snapshots the map's values up front: Go gives no stable
// iteration order across separate range statements, but the spec only
// requires stability within a single traversal, which a snapshot satisfies.
func (s *Set) NewIterator() *Iterator {
	if s.enc == IntSet {
		return &Iterator{ints: s.ints.vals}
	}
	vals := make([]*obj.Object, 0, len(s.hash))
	for _, v := range s.hash {
		vals = append(vals, v)
	}
	return &Iterator{hashVal: vals}
}

// Next advances the iterator and returns the next literal, or ok=false at
// end of set.
func (it *Iterator) Next() (obj.Literal, bool) {
	if it.ints != nil {
		if it.intIdx >= len(it.ints) {
			return obj.Literal{}, false
		}
		v := it.ints[it.intIdx]
		it.intIdx++
		return obj.LiteralFromInt(v), true
	}
	if it.hashIdx >= len(it.hashVal) {
		return obj.Literal{}, false
	}
	v := it.hashVal[it.hashIdx]
	it.hashIdx++
	return obj.LiteralFromObject(v, false), true
}

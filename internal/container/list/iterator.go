package list

import (
	stdlist "container/list"

	"github.com/corekv/corekv/internal/obj"
)

// Iterator is a lazy forward scan over a List's elements, yielding Literals
// so integer-encoded elements never force an Object allocation. It is
// invalidated by any mutation of the underlying List.
type Iterator struct {
	compactEntries []compactEntry
	compactIdx     int
	elem           *stdlist.Element
}

// NewIterator returns a forward iterator positioned before the first
// element.
func (l *List) NewIterator() *Iterator {
	if l.enc == Compact {
		return &Iterator{compactEntries: l.compact.entries}
	}
	return &Iterator{elem: l.linked.Front()}
}

// Next advances the iterator and returns the next literal, or ok=false at
// end of list.
func (it *Iterator) Next() (obj.Literal, bool) {
	if it.compactEntries != nil {
		if it.compactIdx >= len(it.compactEntries) {
			return obj.Literal{}, false
		}
		e := it.compactEntries[it.compactIdx]
		it.compactIdx++
		if e.isInt {
			return obj.LiteralFromInt(e.ival), true
		}
		return obj.LiteralFromBytes(e.bytes), true
	}
	if it.elem == nil {
		return obj.Literal{}, false
	}
	o := it.elem.Value.(*obj.Object)
	it.elem = it.elem.Next()
	return obj.LiteralFromObject(o, false), true
}

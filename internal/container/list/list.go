// Package list implements the dual-encoding List container: a compact
// slice-backed encoding for small lists, promoted irreversibly to a
// doubly-linked encoding once a size or value-shape threshold is crossed.
package list

import (
	stdlist "container/list"

	"github.com/corekv/corekv/internal/obj"
)

// Encoding reports which representation a List currently uses.
type Encoding uint8

const (
	// Compact is the flat-slice representation used while the list is
	// small and holds no oversized byte-string values.
	Compact Encoding = iota
	// Linked is the doubly-linked, pointer-rich representation. Once a
	// list is promoted to Linked it never demotes.
	Linked
)

func (e Encoding) String() string {
	if e == Linked {
		return "linked"
	}
	return "compact"
}

// End selects which side of a list an operation addresses.
type End uint8

const (
	Head End = iota
	Tail
)

// Limits are the two promotion thresholds from spec §6.4.
type Limits struct {
	MaxEntries int
	MaxValue   int // bytes
}

// List is a tagged Compact/Linked container of *obj.Object values.
type List struct {
	enc     Encoding
	compact compactList
	linked  *stdlist.List
}

// New creates an empty list in the Compact encoding.
func New() *List {
	return &List{enc: Compact}
}

// Encoding reports the list's current representation.
func (l *List) Encoding() Encoding { return l.enc }

// Len reports the number of elements.
func (l *List) Len() int {
	if l.enc == Compact {
		return l.compact.Len()
	}
	return l.linked.Len()
}

// tryPromote converts Compact -> Linked when value or the post-insert count
// would cross either threshold. Mirrors tlistTryConversion + the count
// check in tlistPush: the value-length check runs first and independently
// of the count check, both before the element is inserted.
func (l *List) tryPromote(value *obj.Object, lim Limits) {
	if l.enc != Compact {
		return
	}
	if !value.IsInt() && len(value.Bytes()) > lim.MaxValue {
		l.convert()
		return
	}
	if l.compact.Len()+1 > lim.MaxEntries {
		l.convert()
	}
}

func (l *List) convert() {
	if l.enc != Compact {
		return
	}
	linked := stdlist.New()
	for _, e := range l.compact.entries {
		linked.PushBack(e.toObject())
	}
	l.linked = linked
	l.compact = compactList{}
	l.enc = Linked
}

// Push inserts value at the given end, promoting the encoding first if
// necessary.
func (l *List) Push(value *obj.Object, end End, lim Limits) {
	l.tryPromote(value, lim)
	if l.enc == Compact {
		l.compact.Push(value, end == Head)
		return
	}
	if end == Head {
		l.linked.PushFront(value)
	} else {
		l.linked.PushBack(value)
	}
}

// Pop removes and returns the value at the given end, or nil if empty.
func (l *List) Pop(end End) *obj.Object {
	if l.enc == Compact {
		return l.compact.Pop(end == Head)
	}
	var e *stdlist.Element
	if end == Head {
		e = l.linked.Front()
	} else {
		e = l.linked.Back()
	}
	if e == nil {
		return nil
	}
	l.linked.Remove(e)
	return e.Value.(*obj.Object)
}

// Index resolves a signed index (negative counts from the tail) to the
// object stored there, or nil if out of range.
func (l *List) Index(i int) *obj.Object {
	n := l.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil
	}
	if l.enc == Compact {
		return l.compact.At(i).toObject()
	}
	e := l.linked.Front()
	for j := 0; j < i; j++ {
		e = e.Next()
	}
	return e.Value.(*obj.Object)
}

// Set overwrites the element at signed index i with value, promoting the
// encoding first if the new value would force it. Returns false if i is out
// of range (caller maps that to the out-of-range error).
func (l *List) Set(i int, value *obj.Object, lim Limits) bool {
	n := l.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return false
	}
	if l.enc == Compact && !value.IsInt() && len(value.Bytes()) > lim.MaxValue {
		l.convert()
	}
	if l.enc == Compact {
		l.compact.SetAt(i, value)
		return true
	}
	e := l.linked.Front()
	for j := 0; j < i; j++ {
		e = e.Next()
	}
	e.Value = value
	return true
}

// Range returns a new slice holding the objects at [start, end] inclusive,
// after the caller has already normalized indices (see command layer).
func (l *List) Range(start, end int) []*obj.Object {
	if start > end {
		return nil
	}
	out := make([]*obj.Object, 0, end-start+1)
	if l.enc == Compact {
		for i := start; i <= end; i++ {
			out = append(out, l.compact.At(i).toObject())
		}
		return out
	}
	e := l.linked.Front()
	for j := 0; j < start; j++ {
		e = e.Next()
	}
	for i := start; i <= end; i++ {
		out = append(out, e.Value.(*obj.Object))
		e = e.Next()
	}
	return out
}

// Trim keeps only [start, end] inclusive, discarding the rest. Like Range,
// it expects the caller to have already normalized indices (see command
// layer); callers that resolve an empty range should call Clear instead.
func (l *List) Trim(start, end int) {
	if start > end {
		return
	}
	if l.enc == Compact {
		l.compact.Trim(start, end)
		return
	}
	// Walk once, collecting the surviving range, then rebuild the list.
	// Linked lists have already abandoned O(1) random access so this is
	// the same asymptotic cost as a targeted splice.
	kept := make([]*obj.Object, 0, end-start+1)
	e := l.linked.Front()
	for i := 0; e != nil; i++ {
		if i >= start && i <= end {
			kept = append(kept, e.Value.(*obj.Object))
		}
		e = e.Next()
	}
	l.linked.Init()
	for _, v := range kept {
		l.linked.PushBack(v)
	}
}

func (l *List) clear() {
	if l.enc == Compact {
		l.compact = compactList{}
		return
	}
	l.linked.Init()
}

// Clear empties the list without changing its encoding.
func (l *List) Clear() { l.clear() }

// RemoveMatching deletes up to limit elements equal to target, scanning
// head-to-tail if limit >= 0 or tail-to-head if limit < 0 (|limit| removed);
// limit == 0 removes every match. Returns the number removed.
func (l *List) RemoveMatching(limit int, target *obj.Object) int {
	fromTail := limit < 0
	max := limit
	if max < 0 {
		max = -max
	}
	removed := 0
	if l.enc == Compact {
		return l.compact.RemoveMatching(fromTail, max, target)
	}
	if !fromTail {
		for e := l.linked.Front(); e != nil; {
			next := e.Next()
			if max != 0 && removed >= max {
				break
			}
			if e.Value.(*obj.Object).Equal(target) {
				l.linked.Remove(e)
				removed++
			}
			e = next
		}
		return removed
	}
	for e := l.linked.Back(); e != nil; {
		prev := e.Prev()
		if max != 0 && removed >= max {
			break
		}
		if e.Value.(*obj.Object).Equal(target) {
			l.linked.Remove(e)
			removed++
		}
		e = prev
	}
	return removed
}

// InsertResult distinguishes "pivot not found" from a successful insert so
// the command layer can return the right reply.
type InsertResult int

const (
	InsertNotFound InsertResult = iota
	InsertOK
)

// InsertRelative scans head-to-tail for the first element byte-equal to
// pivot and inserts value immediately before or after it. The caller must
// have already promoted the encoding for value's own shape (LINSERT
// speculatively promotes before scanning, per spec §4.2, since insertion
// cannot cross an encoding change mid-scan).
func (l *List) InsertRelative(before bool, pivot, value *obj.Object) InsertResult {
	if l.enc == Compact {
		idx := l.compact.FindIndex(pivot)
		if idx < 0 {
			return InsertNotFound
		}
		if before {
			l.compact.InsertAt(idx, value)
		} else {
			l.compact.InsertAt(idx+1, value)
		}
		return InsertOK
	}
	for e := l.linked.Front(); e != nil; e = e.Next() {
		if e.Value.(*obj.Object).Equal(pivot) {
			if before {
				l.linked.InsertBefore(value, e)
			} else {
				l.linked.InsertAfter(value, e)
			}
			return InsertOK
		}
	}
	return InsertNotFound
}

// PromoteForValue exposes tryPromote so LINSERT can speculatively promote
// before it starts scanning (the scan and the insert cannot straddle an
// encoding change).
func (l *List) PromoteForValue(value *obj.Object, lim Limits) { l.tryPromote(value, lim) }

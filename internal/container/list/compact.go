package list

import "github.com/corekv/corekv/internal/obj"

// compactEntry is one slot of the compact encoding: either an inline
// integer or a borrowed/owned byte slice. This is the flat-slice substitute
// for the byte-packed primitive list described in spec §6.2 — contiguous
// storage, no per-element pointer, same promotion semantics.
type compactEntry struct {
	isInt bool
	ival  int64
	bytes []byte
}

func entryFromObject(o *obj.Object) compactEntry {
	if n, ok := o.Int(); ok {
		return compactEntry{isInt: true, ival: n}
	}
	return compactEntry{bytes: o.Bytes()}
}

func (e compactEntry) toObject() *obj.Object {
	if e.isInt {
		return obj.FromInt(e.ival)
	}
	return obj.FromBytes(e.bytes)
}

func (e compactEntry) equal(o *obj.Object) bool {
	return e.toObject().Equal(o)
}

// compactList is a contiguous slice of entries, in list order head-to-tail.
type compactList struct {
	entries []compactEntry
}

func (c *compactList) Len() int { return len(c.entries) }

func (c *compactList) Push(value *obj.Object, head bool) {
	e := entryFromObject(value)
	if head {
		c.entries = append(c.entries, compactEntry{})
		copy(c.entries[1:], c.entries)
		c.entries[0] = e
		return
	}
	c.entries = append(c.entries, e)
}

func (c *compactList) Pop(head bool) *obj.Object {
	if len(c.entries) == 0 {
		return nil
	}
	var e compactEntry
	if head {
		e = c.entries[0]
		c.entries = c.entries[1:]
	} else {
		last := len(c.entries) - 1
		e = c.entries[last]
		c.entries = c.entries[:last]
	}
	return e.toObject()
}

func (c *compactList) At(i int) compactEntry { return c.entries[i] }

func (c *compactList) SetAt(i int, value *obj.Object) {
	c.entries[i] = entryFromObject(value)
}

func (c *compactList) Trim(start, end int) {
	c.entries = append([]compactEntry(nil), c.entries[start:end+1]...)
}

func (c *compactList) InsertAt(i int, value *obj.Object) {
	e := entryFromObject(value)
	c.entries = append(c.entries, compactEntry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
}

// FindIndex returns the index of the first entry byte-equal to target, or
// -1 if none matches.
func (c *compactList) FindIndex(target *obj.Object) int {
	for i, e := range c.entries {
		if e.equal(target) {
			return i
		}
	}
	return -1
}

// RemoveMatching deletes up to max entries (0 = unbounded) equal to target,
// scanning from the tail if fromTail, otherwise from the head.
func (c *compactList) RemoveMatching(fromTail bool, max int, target *obj.Object) int {
	kept := make([]compactEntry, 0, len(c.entries))
	removed := 0
	if !fromTail {
		for _, e := range c.entries {
			if e.equal(target) && (max == 0 || removed < max) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		c.entries = kept
		return removed
	}
	// Scan tail-to-head by iterating in reverse and re-reversing at the end.
	rev := make([]compactEntry, 0, len(c.entries))
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if e.equal(target) && (max == 0 || removed < max) {
			removed++
			continue
		}
		rev = append(rev, e)
	}
	for i := len(rev) - 1; i >= 0; i-- {
		kept = append(kept, rev[i])
	}
	c.entries = kept
	return removed
}

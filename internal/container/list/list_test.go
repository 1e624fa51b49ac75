package list

import (
	"testing"

	"github.com/corekv/corekv/internal/obj"
)

func looseLimits() Limits { return Limits{MaxEntries: 128, MaxValue: 64} }

func tightLimits() Limits { return Limits{MaxEntries: 2, MaxValue: 64} }

func TestPushAndPopFIFOOrder(t *testing.T) {
	l := New()
	lim := looseLimits()
	l.Push(obj.FromBytes([]byte("a")), Tail, lim)
	l.Push(obj.FromBytes([]byte("b")), Tail, lim)
	l.Push(obj.FromBytes([]byte("c")), Head, lim)

	if got := l.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if v := l.Pop(Head); string(v.Bytes()) != "c" {
		t.Fatalf("Pop(Head) = %q, want c", v.Bytes())
	}
	if v := l.Pop(Tail); string(v.Bytes()) != "b" {
		t.Fatalf("Pop(Tail) = %q, want b", v.Bytes())
	}
}

func TestPopEmptyReturnsNil(t *testing.T) {
	l := New()
	if v := l.Pop(Head); v != nil {
		t.Fatalf("Pop on empty list = %v, want nil", v)
	}
}

func TestPromotionOnEntryCount(t *testing.T) {
	l := New()
	lim := tightLimits()
	l.Push(obj.FromBytes([]byte("1")), Tail, lim)
	l.Push(obj.FromBytes([]byte("2")), Tail, lim)
	if l.Encoding() != Compact {
		t.Fatalf("encoding promoted too early: %v", l.Encoding())
	}
	l.Push(obj.FromBytes([]byte("3")), Tail, lim)
	if l.Encoding() != Linked {
		t.Fatalf("encoding = %v, want Linked after crossing MaxEntries", l.Encoding())
	}
	// Promotion is irreversible: shrinking back under the threshold must not
	// demote.
	l.Pop(Tail)
	l.Pop(Tail)
	if l.Encoding() != Linked {
		t.Fatalf("encoding demoted after shrink: %v", l.Encoding())
	}
}

func TestPromotionOnOversizedValue(t *testing.T) {
	l := New()
	lim := Limits{MaxEntries: 128, MaxValue: 4}
	l.Push(obj.FromBytes([]byte("short")), Tail, lim) // "short" folds? no, stays bytes, len 5 > 4
	if l.Encoding() != Linked {
		t.Fatalf("encoding = %v, want Linked: oversized value should promote immediately", l.Encoding())
	}
}

func TestPromotionIgnoresIntegerValueLength(t *testing.T) {
	l := New()
	lim := Limits{MaxEntries: 128, MaxValue: 1}
	// An integer value that round-trips is stored compactly regardless of
	// its decimal text length — only non-integer byte values are measured.
	l.Push(obj.FromBytes([]byte("123456789")), Tail, lim)
	if l.Encoding() != Compact {
		t.Fatalf("encoding = %v, want Compact: integer values bypass the value-length check", l.Encoding())
	}
}

func TestIndexNegative(t *testing.T) {
	l := New()
	lim := looseLimits()
	for _, s := range []string{"a", "b", "c"} {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	if v := l.Index(-1); string(v.Bytes()) != "c" {
		t.Fatalf("Index(-1) = %q, want c", v.Bytes())
	}
	if v := l.Index(5); v != nil {
		t.Fatalf("Index(5) out of range should be nil, got %v", v)
	}
}

func TestRangeAndTrim(t *testing.T) {
	l := New()
	lim := looseLimits()
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	vals := l.Range(1, 3)
	want := []string{"b", "c", "d"}
	for i, v := range vals {
		if string(v.Bytes()) != want[i] {
			t.Fatalf("Range[%d] = %q, want %q", i, v.Bytes(), want[i])
		}
	}
	l.Trim(1, 3)
	if l.Len() != 3 {
		t.Fatalf("Len() after Trim = %d, want 3", l.Len())
	}
	if v := l.Index(0); string(v.Bytes()) != "b" {
		t.Fatalf("Index(0) after Trim = %q, want b", v.Bytes())
	}
}

func TestRemoveMatchingDirectionAndLimit(t *testing.T) {
	l := New()
	lim := looseLimits()
	for _, s := range []string{"x", "a", "x", "a", "x"} {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	removed := l.RemoveMatching(2, obj.FromBytes([]byte("x")))
	if removed != 2 {
		t.Fatalf("RemoveMatching(2) removed %d, want 2", removed)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() after RemoveMatching = %d, want 3", l.Len())
	}
	// Only one "x" should remain, at the tail (scanned head-to-tail, removed
	// the first two).
	if v := l.Index(-1); string(v.Bytes()) != "x" {
		t.Fatalf("Index(-1) = %q, want x", v.Bytes())
	}
}

func TestRemoveMatchingFromTail(t *testing.T) {
	l := New()
	lim := looseLimits()
	for _, s := range []string{"x", "a", "x", "a", "x"} {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	removed := l.RemoveMatching(-1, obj.FromBytes([]byte("x")))
	if removed != 1 {
		t.Fatalf("RemoveMatching(-1) removed %d, want 1", removed)
	}
	if v := l.Index(-1); string(v.Bytes()) != "a" {
		t.Fatalf("Index(-1) after tail removal = %q, want a (the last x should be gone)", v.Bytes())
	}
}

func TestInsertRelative(t *testing.T) {
	l := New()
	lim := looseLimits()
	l.Push(obj.FromBytes([]byte("a")), Tail, lim)
	l.Push(obj.FromBytes([]byte("c")), Tail, lim)
	res := l.InsertRelative(true, obj.FromBytes([]byte("c")), obj.FromBytes([]byte("b")))
	if res != InsertOK {
		t.Fatalf("InsertRelative = %v, want InsertOK", res)
	}
	if v := l.Index(1); string(v.Bytes()) != "b" {
		t.Fatalf("Index(1) = %q, want b", v.Bytes())
	}
	res = l.InsertRelative(true, obj.FromBytes([]byte("zzz")), obj.FromBytes([]byte("never")))
	if res != InsertNotFound {
		t.Fatalf("InsertRelative with missing pivot = %v, want InsertNotFound", res)
	}
}

func TestIteratorMatchesRange(t *testing.T) {
	l := New()
	lim := looseLimits()
	want := []string{"a", "b", "c"}
	for _, s := range want {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	it := l.NewIterator()
	var got []string
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, string(lit.Bytes()))
	}
	if len(got) != len(want) {
		t.Fatalf("iterator yielded %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iterator[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIteratorOverLinkedEncoding(t *testing.T) {
	l := New()
	lim := tightLimits()
	for _, s := range []string{"1", "2", "3"} {
		l.Push(obj.FromBytes([]byte(s)), Tail, lim)
	}
	if l.Encoding() != Linked {
		t.Fatalf("setup: expected Linked encoding")
	}
	it := l.NewIterator()
	n, ok := it.Next()
	if !ok {
		t.Fatalf("expected at least one element")
	}
	v, ok := n.AsInt()
	if !ok || v != 1 {
		t.Fatalf("first linked literal = %v, ok=%v, want 1", v, ok)
	}
}

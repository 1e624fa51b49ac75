package obj

// Literal is the transient view an iterator produces for one element. It is
// one of three things: an integer read straight out of a compact container,
// a byte slice borrowed from a compact container's backing storage, or a
// materialized Object. Scans should consult AsInt before AsObject so the
// common integer fast path never allocates.
type Literal struct {
	kind    literalKind
	ival    int64
	borrow  []byte
	object  *Object
	owned   bool
}

type literalKind uint8

const (
	literalInt literalKind = iota
	literalBytes
	literalObject
)

// LiteralFromInt builds a literal around a bare integer.
func LiteralFromInt(n int64) Literal {
	return Literal{kind: literalInt, ival: n}
}

// LiteralFromBytes builds a literal that borrows b. The caller must not
// mutate the backing container while the literal is alive.
func LiteralFromBytes(b []byte) Literal {
	return Literal{kind: literalBytes, borrow: b}
}

// LiteralFromObject builds a literal around an already-materialized object.
// owned marks whether the literal is responsible for releasing it.
func LiteralFromObject(o *Object, owned bool) Literal {
	return Literal{kind: literalObject, object: o, owned: owned}
}

// AsInt returns the literal's integer value, without materializing an
// Object, if the literal is (or decodes trivially to) an integer.
func (l *Literal) AsInt() (int64, bool) {
	switch l.kind {
	case literalInt:
		return l.ival, true
	case literalObject:
		return l.object.Int()
	default:
		return 0, false
	}
}

// AsObject materializes the literal as an Object, marking the literal dirty
// if that required allocating a new one.
func (l *Literal) AsObject() *Object {
	if l.kind == literalObject || l.object != nil {
		return l.object
	}
	switch l.kind {
	case literalInt:
		l.object = FromInt(l.ival)
	default:
		l.object = FromBytes(l.borrow)
	}
	l.owned = true
	return l.object
}

// Bytes returns the decoded byte form without necessarily materializing an
// Object (the fast path for borrowed bytes).
func (l *Literal) Bytes() []byte {
	switch l.kind {
	case literalBytes:
		return l.borrow
	case literalInt:
		return FromInt(l.ival).Bytes()
	default:
		return l.object.Bytes()
	}
}

// Release drops the literal's ownership of a materialized object. With Go's
// GC this is a bookkeeping no-op, but it preserves the discipline the spec
// requires: callers must invoke it at the end of each loop iteration.
func (l *Literal) Release() {
	if l.owned {
		l.object = nil
		l.owned = false
	}
}

// Package obj implements the value representation shared by every
// collection container: a small object that is either a decoded byte
// string or a compact integer, plus the transient iterator view over it.
package obj

import "strconv"

// Object is an immutable value held by a container. It is either a byte
// string or a small integer; never both. Go's garbage collector takes the
// place of the source material's refcounting, so Object carries no
// lifecycle methods beyond construction.
type Object struct {
	bytes []byte
	ival  int64
	isInt bool
}

// FromBytes wraps a byte string, trying to fold it into the compact integer
// form first — the "try-encode-integer" operation from the data model.
func FromBytes(b []byte) *Object {
	if n, ok := parseInt64(b); ok {
		return &Object{ival: n, isInt: true}
	}
	return &Object{bytes: append([]byte(nil), b...)}
}

// FromInt wraps an integer directly.
func FromInt(n int64) *Object {
	return &Object{ival: n, isInt: true}
}

// IsInt reports whether the object holds an integer rather than raw bytes.
func (o *Object) IsInt() bool { return o.isInt }

// Int returns the integer value and true if the object is integer-encoded.
func (o *Object) Int() (int64, bool) {
	if o == nil || !o.isInt {
		return 0, false
	}
	return o.ival, true
}

// Bytes materializes the decoded byte-string form, regardless of encoding.
// This is the "decode" operation from the data model.
func (o *Object) Bytes() []byte {
	if o == nil {
		return nil
	}
	if o.isInt {
		return strconv.AppendInt(nil, o.ival, 10)
	}
	return o.bytes
}

// Equal reports byte-equality of the decoded forms of two objects.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.isInt && other.isInt {
		return o.ival == other.ival
	}
	return string(o.Bytes()) == string(other.Bytes())
}

// EqualBytes reports whether the object's decoded form equals b.
func (o *Object) EqualBytes(b []byte) bool {
	if o == nil {
		return b == nil
	}
	return string(o.Bytes()) == string(b)
}

func parseInt64(b []byte) (int64, bool) {
	if len(b) == 0 || len(b) > 20 {
		return 0, false
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	// Reject forms that wouldn't round-trip byte-for-byte (leading zeros,
	// "+1", etc.) so FromBytes never silently changes a value's textual
	// representation.
	if strconv.FormatInt(n, 10) != string(b) {
		return 0, false
	}
	return n, true
}

package obj

import "testing"

func TestLiteralAsIntFastPath(t *testing.T) {
	lit := LiteralFromInt(9)
	n, ok := lit.AsInt()
	if !ok || n != 9 {
		t.Fatalf("want 9, true; got %v, %v", n, ok)
	}
}

func TestLiteralFromBytesAsIntFails(t *testing.T) {
	lit := LiteralFromBytes([]byte("hello"))
	if _, ok := lit.AsInt(); ok {
		t.Fatalf("borrowed non-integer bytes should not report AsInt ok")
	}
	if string(lit.Bytes()) != "hello" {
		t.Fatalf("Bytes() should return the borrowed slice verbatim")
	}
}

func TestLiteralAsObjectMaterializesOnce(t *testing.T) {
	lit := LiteralFromBytes([]byte("world"))
	o1 := lit.AsObject()
	o2 := lit.AsObject()
	if o1 != o2 {
		t.Fatalf("AsObject should return the same materialized object on repeat calls")
	}
	if string(o1.Bytes()) != "world" {
		t.Fatalf("materialized object should decode to the original bytes")
	}
}

func TestLiteralReleaseClearsOwnedObject(t *testing.T) {
	lit := LiteralFromBytes([]byte("x"))
	lit.AsObject()
	lit.Release()
	// Release only affects ownership bookkeeping; AsObject must still work.
	if lit.AsObject() == nil {
		t.Fatalf("AsObject after Release should still materialize")
	}
}

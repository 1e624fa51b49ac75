package resp

import (
	"bytes"
	"testing"
)

func TestWriteBulkAndFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBulkString("hello")
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := buf.String(); got != "$5\r\nhello\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteBulkNil(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBulk(nil)
	w.Flush()
	if got := buf.String(); got != "$-1\r\n" {
		t.Fatalf("got %q, want nil bulk", got)
	}
}

func TestDeferredMultiBulkLen(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := w.DeferredMultiBulkLen()
	w.WriteBulkString("a")
	w.WriteBulkString("b")
	w.SetDeferredLen(h, 2)
	w.Flush()
	if got := buf.String(); got != "*2\r\n$1\r\na\r\n$1\r\nb\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteIntAndError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteInt(42)
	w.WriteError("ERR boom")
	w.Flush()
	if got := buf.String(); got != ":42\r\n-ERR boom\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFlushResetsSegments(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteRaw(OK)
	w.Flush()
	buf.Reset()
	w.Flush() // nothing queued; must not re-emit the prior reply
	if got := buf.String(); got != "" {
		t.Fatalf("got %q, want empty — Flush should not replay old segments", got)
	}
}

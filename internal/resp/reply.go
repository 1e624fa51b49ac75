// Package resp implements the reply encoder contract of spec §6.3: bulk and
// multi-bulk replies, a deferred-length handle for headers whose element
// count isn't known until after a scan completes, and the shared singleton
// replies referenced throughout the command taxonomy (spec §7).
package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Writer accumulates one command reply as a sequence of byte segments and
// flushes them to the underlying connection together. Segments exist so
// DeferredLen can hand back a slot that's filled in later, after the
// element count is known, without having to pre-compute it.
type Writer struct {
	out  *bufio.Writer
	segs [][]byte
}

// NewWriter wraps w for buffered RESP output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// DeferredHandle addresses a reserved, not-yet-filled segment.
type DeferredHandle struct{ idx int }

// DeferredMultiBulkLen reserves a slot for a multi-bulk header whose count
// isn't known yet, returning a handle SetDeferredLen later fills.
func (w *Writer) DeferredMultiBulkLen() DeferredHandle {
	w.segs = append(w.segs, nil)
	return DeferredHandle{idx: len(w.segs) - 1}
}

// SetDeferredLen fills in a previously reserved header slot.
func (w *Writer) SetDeferredLen(h DeferredHandle, n int) {
	w.segs[h.idx] = multiBulkHeader(n)
}

func multiBulkHeader(n int) []byte {
	return []byte(fmt.Sprintf("*%d\r\n", n))
}

// WriteMultiBulkLen appends a multi-bulk header with a known count. n < 0
// writes the nil-multi-bulk header ("*-1\r\n").
func (w *Writer) WriteMultiBulkLen(n int) {
	w.segs = append(w.segs, multiBulkHeader(n))
}

// WriteBulk appends a bulk string reply, or the nil-bulk reply if b is nil.
func (w *Writer) WriteBulk(b []byte) {
	if b == nil {
		w.segs = append(w.segs, NilBulk)
		return
	}
	seg := make([]byte, 0, len(b)+16)
	seg = append(seg, '$')
	seg = strconv.AppendInt(seg, int64(len(b)), 10)
	seg = append(seg, '\r', '\n')
	seg = append(seg, b...)
	seg = append(seg, '\r', '\n')
	w.segs = append(w.segs, seg)
}

// WriteBulkString is WriteBulk for a Go string.
func (w *Writer) WriteBulkString(s string) { w.WriteBulk([]byte(s)) }

// WriteInt appends an integer reply.
func (w *Writer) WriteInt(n int64) {
	w.segs = append(w.segs, []byte(fmt.Sprintf(":%d\r\n", n)))
}

// WriteSimpleString appends a RESP simple-string reply ("+OK\r\n" etc).
func (w *Writer) WriteSimpleString(s string) {
	w.segs = append(w.segs, []byte("+"+s+"\r\n"))
}

// WriteError appends a RESP error reply.
func (w *Writer) WriteError(msg string) {
	w.segs = append(w.segs, []byte("-"+msg+"\r\n"))
}

// WriteRaw appends pre-encoded bytes verbatim — used for the shared
// singleton replies below, so a hot command path need not reallocate them.
func (w *Writer) WriteRaw(b []byte) { w.segs = append(w.segs, b) }

// Flush writes every accumulated segment to the underlying connection and
// resets the writer for the next reply.
func (w *Writer) Flush() error {
	for _, s := range w.segs {
		if _, err := w.out.Write(s); err != nil {
			w.segs = nil
			return err
		}
	}
	w.segs = nil
	return w.out.Flush()
}

// Shared singleton replies (spec §6.3). Kept as pre-encoded byte slices so
// the common-case replies never allocate.
var (
	NilBulk       = []byte("$-1\r\n")
	NilMultiBulk  = []byte("*-1\r\n")
	EmptyMulti    = []byte("*0\r\n")
	Zero          = []byte(":0\r\n")
	One           = []byte(":1\r\n")
	NegativeOne   = []byte(":-1\r\n")
	OK            = []byte("+OK\r\n")
	SyntaxErr     = []byte("-ERR syntax error\r\n")
	WrongTypeErr  = []byte("-WRONGTYPE Operation against a key holding the wrong kind of value\r\n")
	OutOfRangeErr = []byte("-ERR index out of range\r\n")
	NoKeyErr      = []byte("-ERR no such key\r\n")
)

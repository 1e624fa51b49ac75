package command

import (
	"bytes"

	"github.com/corekv/corekv/internal/blocking"
	"github.com/corekv/corekv/internal/config"
	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
)

// newTestContext builds a Context over a fresh keyspace and registry, with
// its Writer draining into buf so tests can assert on the exact reply
// bytes — the wire format is simple and stable enough that this beats a
// bespoke reply decoder.
func newTestContext(buf *bytes.Buffer) *Context {
	return &Context{
		DB:     store.NewDatabase(),
		Reg:    blocking.NewRegistry(),
		Limits: config.New(),
		W:      resp.NewWriter(buf),
	}
}

func flush(ctx *Context, buf *bytes.Buffer) string {
	ctx.W.Flush()
	s := buf.String()
	buf.Reset()
	return s
}

func args(parts ...string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

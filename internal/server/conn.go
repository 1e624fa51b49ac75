package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/corekv/corekv/internal/blocking"
	"github.com/corekv/corekv/internal/resp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// conn is one client connection's goroutine state. Per spec §5, this
// goroutine only encodes/decodes bytes; every piece of shared state it
// touches goes through Server.Submit/NotifyUnblock onto the dispatch
// goroutine.
type conn struct {
	id     blocking.ClientID
	nc     net.Conn
	r      *resp.Reader
	w      *resp.Writer
	srv    *Server
	log    *zap.Logger

	inTxn  bool
	queued [][][]byte // commands queued between MULTI and EXEC/DISCARD
}

func (s *Server) serveConn(ctx context.Context, nc net.Conn) {
	id := blocking.ClientID(uuid.NewString())
	c := &conn{
		id:  id,
		nc:  nc,
		r:   resp.NewReader(nc),
		w:   resp.NewWriter(nc),
		srv: s,
		log: s.log.With(zap.String("client_id", string(id))),
	}
	c.log.Info("client connected", zap.String("remote", nc.RemoteAddr().String()))
	defer func() {
		nc.Close()
		s.NotifyUnblock(c.id)
		c.log.Info("client disconnected")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		args, err := c.r.ReadCommand()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Debug("read error", zap.Error(err))
			}
			return
		}
		if len(args) == 0 {
			continue
		}
		if c.handleTxnControl(args) {
			continue
		}
		if c.inTxn {
			c.queued = append(c.queued, args)
			c.w.WriteRaw(resp.OK)
			if err := c.w.Flush(); err != nil {
				return
			}
			continue
		}
		if !c.runOne(args, false) {
			return
		}
	}
}

// handleTxnControl intercepts MULTI/EXEC/DISCARD, which are session state
// rather than keyspace commands, and so are handled here rather than in
// the command table. It reports whether args was one of these.
func (c *conn) handleTxnControl(args [][]byte) bool {
	name := string(bytes.ToUpper(args[0]))
	switch name {
	case "MULTI":
		if c.inTxn {
			c.w.WriteError("ERR MULTI calls can not be nested")
		} else {
			c.inTxn = true
			c.queued = nil
			c.w.WriteRaw(resp.OK)
		}
		c.w.Flush()
		return true
	case "DISCARD":
		if !c.inTxn {
			c.w.WriteError("ERR DISCARD without MULTI")
		} else {
			c.inTxn = false
			c.queued = nil
			c.w.WriteRaw(resp.OK)
		}
		c.w.Flush()
		return true
	case "EXEC":
		if !c.inTxn {
			c.w.WriteError("ERR EXEC without MULTI")
			c.w.Flush()
			return true
		}
		queued := c.queued
		c.inTxn = false
		c.queued = nil
		c.w.WriteMultiBulkLen(len(queued))
		for _, cmd := range queued {
			// A blocking command inside EXEC must fail fast (spec §4.5):
			// runOne's inTxn=true path is what makes that happen.
			c.runOne(cmd, true)
		}
		c.w.Flush()
		return true
	}
	return false
}

// runOne submits args to the dispatch goroutine and, if it deferred as a
// blocking pop, waits it out. Returns false if the connection should close.
func (c *conn) runOne(args [][]byte, inTxn bool) bool {
	result := c.srv.Submit(c.id, args, c.w, inTxn)
	if result.block != nil {
		c.awaitBlocked(result.block.Deadline, result.block.Target != "", result.wake)
	}
	if !inTxn {
		if err := c.w.Flush(); err != nil {
			return false
		}
	}
	return true
}

// awaitBlocked suspends this connection's goroutine until a value is
// delivered, the deadline passes, or the client disconnects — realizing
// the suspend/resume half of spec §5's blocking-pop design, which the
// dispatch goroutine itself never performs.
func (c *conn) awaitBlocked(deadline time.Time, redirect bool, wake chan blocking.Wake) {
	var timerCh <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timerCh = t.C
	}

	// A disconnect while blocked must be noticed without another command
	// ever arriving. Probe the socket from a throwaway goroutine; its read
	// is force-aborted via SetReadDeadline once the wait resolves any other
	// way, so it never races the main read loop's next ReadCommand.
	disconnected := make(chan struct{})
	probeDone := make(chan struct{})
	go func() {
		defer close(probeDone)
		var buf [1]byte
		if _, err := c.nc.Read(buf[:]); err != nil {
			close(disconnected)
		}
	}()

	select {
	case w := <-wake:
		c.writeWake(w)
	case <-timerCh:
		c.srv.NotifyUnblock(c.id)
		if redirect {
			// BRPOPLPUSH replies a single bulk; a timeout is nil bulk, not
			// the nil multi-bulk a plain BLPOP/BRPOP timeout replies.
			c.w.WriteRaw(resp.NilBulk)
		} else {
			c.w.WriteRaw(resp.NilMultiBulk)
		}
	case <-disconnected:
		c.srv.NotifyUnblock(c.id)
	}

	c.nc.SetReadDeadline(time.Now())
	<-probeDone
	c.nc.SetReadDeadline(time.Time{})
}

func (c *conn) writeWake(w blocking.Wake) {
	switch w.Kind {
	case blocking.WakeDelivered:
		if w.Target != "" {
			// BRPOPLPUSH delivered via a concurrent push redirect: reply
			// just the value (spec §4.5 step 2d), not the (key, value)
			// tuple a plain blocking pop replies.
			c.w.WriteBulk(w.Value.Bytes())
			return
		}
		c.w.WriteMultiBulkLen(2)
		c.w.WriteBulkString(w.Key)
		c.w.WriteBulk(w.Value.Bytes())
	case blocking.WakeTypeError:
		c.w.WriteRaw(resp.WrongTypeErr)
	default:
		c.w.WriteRaw(resp.NilMultiBulk)
	}
}

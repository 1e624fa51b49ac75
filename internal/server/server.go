// Package server implements the network-facing side of the single
// dispatch-goroutine model from spec §5: one goroutine owns the keyspace,
// the blocking registry, and the dirty counter; every connection goroutine
// only encodes/decodes bytes and forwards decoded commands to it over a
// channel (spec §9 "Blocking registry as message passing," generalized to
// the whole dispatcher).
package server

import (
	"context"
	"net"

	"github.com/corekv/corekv/internal/blocking"
	"github.com/corekv/corekv/internal/command"
	"github.com/corekv/corekv/internal/config"
	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/store"
	"go.uber.org/zap"
)

// Server owns the shared state and the single dispatch goroutine that
// mutates it.
type Server struct {
	log    *zap.Logger
	db     *store.Database
	reg    *blocking.Registry
	limits *config.Limits

	reqCh      chan *request
	unblockCh  chan *unblockRequest
}

// request is one decoded command awaiting execution on the dispatch
// goroutine.
type request struct {
	clientID blocking.ClientID
	args     [][]byte
	w        *resp.Writer
	inTxn    bool
	respCh   chan *dispatchResult
}

// dispatchResult is what the dispatch goroutine hands back after running a
// command: either an immediate reply (already written into the request's
// Writer) or a deferred blocking registration the connection must now wait
// out itself.
type dispatchResult struct {
	block    *command.BlockSpec
	wake     chan blocking.Wake
	rewrite  [][]byte
}

// unblockRequest asks the dispatch goroutine to remove a client from the
// blocking registry — used on timeout and on disconnect, both of which are
// noticed by a connection goroutine but must be applied by the sole owner
// of the registry.
type unblockRequest struct {
	clientID blocking.ClientID
	done     chan struct{}
}

// New creates a Server with a fresh keyspace and blocking registry.
func New(log *zap.Logger, limits *config.Limits) *Server {
	return &Server{
		log:       log.Named("dispatch"),
		db:        store.NewDatabase(),
		reg:       blocking.NewRegistry(),
		limits:    limits,
		reqCh:     make(chan *request),
		unblockCh: make(chan *unblockRequest),
	}
}

// Database exposes the keyspace for the admin HTTP surface's read-only
// introspection endpoints.
func (s *Server) Database() *store.Database { return s.db }

// Run is the dispatch goroutine's body: it is the only goroutine that ever
// touches s.db or s.reg. It returns when ctx is canceled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case req := <-s.reqCh:
			s.handle(req)
		case u := <-s.unblockCh:
			s.reg.Unblock(u.clientID)
			close(u.done)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handle(req *request) {
	cctx := &command.Context{
		DB:       s.db,
		Reg:      s.reg,
		Limits:   s.limits,
		Log:      s.log,
		ClientID: req.clientID,
		InTxn:    req.inTxn,
		W:        req.w,
	}
	command.Execute(cctx, req.args)

	result := &dispatchResult{rewrite: cctx.Rewritten}
	if cctx.Block != nil {
		wake := make(chan blocking.Wake, 1)
		s.reg.BlockForKeys(req.clientID, cctx.Block.Keys, cctx.Block.Deadline, cctx.Block.Target, wake)
		result.block = cctx.Block
		result.wake = wake
	}
	req.respCh <- result
}

// Submit hands a decoded command to the dispatch goroutine and blocks until
// it has run. Called from a connection goroutine.
func (s *Server) Submit(clientID blocking.ClientID, args [][]byte, w *resp.Writer, inTxn bool) *dispatchResult {
	req := &request{clientID: clientID, args: args, w: w, inTxn: inTxn, respCh: make(chan *dispatchResult, 1)}
	s.reqCh <- req
	return <-req.respCh
}

// NotifyUnblock asks the dispatch goroutine to remove clientID from the
// blocking registry, waiting until it has done so. Used on timeout
// expiry and on client disconnect while blocked.
func (s *Server) NotifyUnblock(clientID blocking.ClientID) {
	done := make(chan struct{})
	s.unblockCh <- &unblockRequest{clientID: clientID, done: done}
	<-done
}

// ListenAndServe accepts connections on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	s.log.Info("listening", zap.String("addr", addr))
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}
		go s.serveConn(ctx, conn)
	}
}

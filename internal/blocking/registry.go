// Package blocking implements the rendezvous subsystem of spec §4.5: a push
// onto a watched key is delivered straight to the oldest waiting client
// instead of entering the container. The registry is realized as two plain
// maps manipulated only by the dispatch goroutine (spec §9 "Blocking
// registry as message passing" — delivery is a message sent over a
// channel, not a pointer into client state).
package blocking

import (
	stdlist "container/list"
	"time"

	"github.com/corekv/corekv/internal/obj"
)

// ClientID identifies a blocked client; in practice the per-connection
// uuid.UUID string minted by internal/server.
type ClientID string

// WakeKind distinguishes the reasons a waiter's Reply channel fires.
type WakeKind uint8

const (
	// WakeDelivered means a value was handed to this waiter directly.
	WakeDelivered WakeKind = iota
	// WakeTimeout means the absolute deadline passed with no delivery.
	WakeTimeout
	// WakeTypeError means a BRPOPLPUSH delivery found the target key held
	// a non-List value; the error is surfaced to this waiter and the
	// registry moves on to the next one (spec §4.5 step 2d).
	WakeTypeError
)

// Wake is sent on a waiter's Reply channel at most once.
type Wake struct {
	Kind WakeKind
	Key  string // the key the value was popped from
	// Target is the destination key a BRPOPLPUSH-style waiter redirected
	// its pop to. Empty for a plain blocking pop. A WakeDelivered reply
	// with Target set must reply with just Value (spec §4.5 step 2d); a
	// WakeDelivered reply with Target == "" replies the (Key, Value) tuple
	// (spec §4.5 step 2c).
	Target string
	Value  *obj.Object
	Err    error
}

// Waiter is one blocked client's registration.
type Waiter struct {
	ID       ClientID
	Keys     []string // insertion order, the order BLPOP listed them
	Deadline time.Time // zero means infinite
	Target   string    // "" means a plain blocking pop, no redirect
	Reply    chan Wake

	elems map[string]*stdlist.Element // key -> this waiter's node in byKey[key]
}

// Registry is one database's waiting-clients registry.
type Registry struct {
	byKey    map[string]*stdlist.List // key -> *Waiter, oldest at Front
	byClient map[ClientID]*Waiter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:    make(map[string]*stdlist.List),
		byClient: make(map[ClientID]*Waiter),
	}
}

// BlockForKeys registers client id as waiting on keys, in order, with the
// given absolute deadline (zero = infinite) and optional target key for the
// blocking pop-and-push variant. Reply receives at most one Wake, sent by
// DeliverOnPush (a delivery or a target type error). Timeout and
// disconnect are noticed by the caller, which calls Unblock; nothing is
// sent on Reply in those cases.
func (r *Registry) BlockForKeys(id ClientID, keys []string, deadline time.Time, target string, reply chan Wake) *Waiter {
	w := &Waiter{
		ID:       id,
		Keys:     append([]string(nil), keys...),
		Deadline: deadline,
		Target:   target,
		Reply:    reply,
		elems:    make(map[string]*stdlist.Element, len(keys)),
	}
	for _, k := range keys {
		q, ok := r.byKey[k]
		if !ok {
			q = stdlist.New()
			r.byKey[k] = q
		}
		w.elems[k] = q.PushBack(w)
	}
	r.byClient[id] = w
	return w
}

// Unblock removes client id from every key it was waiting under, pruning
// empty key queues, and forgets the client. Safe to call on a client that
// isn't currently blocked (no-op). Must run before a disconnecting client's
// state is released (spec §5 Cancellation).
func (r *Registry) Unblock(id ClientID) {
	w, ok := r.byClient[id]
	if !ok {
		return
	}
	for _, k := range w.Keys {
		q, ok := r.byKey[k]
		if !ok {
			continue
		}
		if elem, ok := w.elems[k]; ok {
			q.Remove(elem)
		}
		if q.Len() == 0 {
			delete(r.byKey, k)
		}
	}
	delete(r.byClient, id)
}

// HasWaiters reports whether any client is waiting on key.
func (r *Registry) HasWaiters(key string) bool {
	q, ok := r.byKey[key]
	return ok && q.Len() > 0
}

// PushFunc performs the normal (non-blocking-aware call site) push of value
// onto key, returning the list's length after the push. It is the recursive
// hook DeliverOnPush uses for the blocking pop-and-push (BRPOPLPUSH)
// variant: the push itself must still consult key's own waiters. Supplied
// by the command package to avoid an import cycle between blocking and the
// list container's command handlers.
type PushFunc func(key string, value *obj.Object) (length int, wrongType bool)

// DeliverOnPush is the heart of the subsystem (spec §4.5 "Deliver-on-push
// algorithm"). It must be called before a push onto key is applied to the
// container. If it returns true, the caller must NOT also insert value into
// key — delivery has already happened.
func (r *Registry) DeliverOnPush(key string, value *obj.Object, push PushFunc) bool {
	q, ok := r.byKey[key]
	if !ok || q.Len() == 0 {
		return false
	}
	attempts := q.Len()
	for i := 0; i < attempts; i++ {
		front := q.Front()
		if front == nil {
			return false
		}
		w := front.Value.(*Waiter)

		// Unblock first: clears w from every key (including this one) so
		// any other registrations are gone before a reply is sent,
		// preventing a double-delivery race (spec §4.5 rationale).
		r.Unblock(w.ID)

		if w.Target == "" {
			w.Reply <- Wake{Kind: WakeDelivered, Key: key, Value: value}
			return true
		}

		length, wrongType := push(w.Target, value)
		if wrongType {
			w.Reply <- Wake{Kind: WakeTypeError, Err: errWrongType}
			// Value not yet delivered: try the next waiter.
			q = r.byKey[key]
			if q == nil {
				return false
			}
			continue
		}
		_ = length
		w.Reply <- Wake{Kind: WakeDelivered, Key: key, Target: w.Target, Value: value}
		return true
	}
	return false
}

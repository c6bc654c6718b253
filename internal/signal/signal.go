// Package signal provides the compositor-wide publish/subscribe bus.
//
// A Bus carries named events. Subscribers receive a Subscription token
// whose Cancel method deterministically unsubscribes; owners cancel
// their tokens before tearing themselves down so a handler can never
// fire against a destroyed owner. The same type is used both for the
// process-wide bus and for per-object event sources (device destroy,
// drag icon map/unmap/destroy).
package signal

import "sync"

// Handler is invoked with the payload passed to Emit.
type Handler func(data interface{})

// Bus is a named-event publish/subscribe dispatcher.
// Handlers run synchronously on the emitting goroutine, in
// subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]*Subscription
}

// Subscription is a scoped handle to one registered handler.
type Subscription struct {
	bus  *Bus
	name string
	id   uint64
	fn   Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]*Subscription),
	}
}

// Subscribe registers fn for the named event and returns its token.
func (b *Bus) Subscribe(name string, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus:  b,
		name: name,
		id:   b.nextID,
		fn:   fn,
	}
	b.subs[name] = append(b.subs[name], sub)
	return sub
}

// Emit delivers data to every subscriber of the named event.
// The subscriber list is snapshotted first, so a handler may cancel
// its own (or any other) subscription during delivery.
func (b *Bus) Emit(name string, data interface{}) {
	b.mu.RLock()
	snapshot := make([]*Subscription, len(b.subs[name]))
	copy(snapshot, b.subs[name])
	b.mu.RUnlock()

	for _, sub := range snapshot {
		if sub.active() {
			sub.fn(data)
		}
	}
}

// Cancel unsubscribes the handler. Cancelling an already-cancelled
// subscription is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}

	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[s.name]
	for i, sub := range list {
		if sub.id == s.id {
			b.subs[s.name] = append(list[:i], list[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// active reports whether the subscription has not been cancelled.
func (s *Subscription) active() bool {
	if s.bus == nil {
		return false
	}
	s.bus.mu.RLock()
	defer s.bus.mu.RUnlock()
	for _, sub := range s.bus.subs[s.name] {
		if sub.id == s.id {
			return true
		}
	}
	return false
}

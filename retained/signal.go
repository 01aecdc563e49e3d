package retained

import "sync/atomic"

// SubscriptionID identifies a handler connected to a signal. It stays valid
// until the handler is disconnected.
type SubscriptionID uint64

var nextSubscriptionID atomic.Uint64

func newSubscriptionID() SubscriptionID {
	return SubscriptionID(nextSubscriptionID.Add(1))
}

type signalHandler[T any] struct {
	id SubscriptionID
	fn func(T)
}

// Signal is an ordered list of typed handlers. Handlers run in connection
// order. Emission iterates a snapshot, so handlers may connect or disconnect
// (themselves included) while the signal is being emitted.
type Signal[T any] struct {
	handlers []signalHandler[T]
}

// Connect adds a handler and returns its subscription.
func (s *Signal[T]) Connect(fn func(T)) SubscriptionID {
	id := newSubscriptionID()
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return id
}

// Disconnect removes a handler. Returns false if the id is unknown.
func (s *Signal[T]) Disconnect(id SubscriptionID) bool {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// DisconnectAll removes every handler.
func (s *Signal[T]) DisconnectAll() {
	s.handlers = nil
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// emit calls every handler with v. Panics are recovered and reported
// against owner.
func (s *Signal[T]) emit(owner *WidgetBase, v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]signalHandler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		guard(owner, func() { h.fn(v) })
	}
}

// VoidSignal is a signal without a payload.
type VoidSignal struct {
	s Signal[struct{}]
}

// Connect adds a handler and returns its subscription.
func (v *VoidSignal) Connect(fn func()) SubscriptionID {
	return v.s.Connect(func(struct{}) { fn() })
}

// Disconnect removes a handler. Returns false if the id is unknown.
func (v *VoidSignal) Disconnect(id SubscriptionID) bool {
	return v.s.Disconnect(id)
}

// DisconnectAll removes every handler.
func (v *VoidSignal) DisconnectAll() {
	v.s.DisconnectAll()
}

// Len returns the number of connected handlers.
func (v *VoidSignal) Len() int {
	return v.s.Len()
}

func (v *VoidSignal) emit(owner *WidgetBase) {
	v.s.emit(owner, struct{}{})
}

// Package stream provides the delta publication point used by transformed
// views: publish one value to zero or more subscribers, synchronously, in
// publish order. Delivery follows subscription order, and a handler may close
// its own (or any other) subscription during delivery without corrupting the
// in-flight delivery to the remaining subscribers.
package stream

import (
	"sync"
)

// Handler consumes one published value.
type Handler[T any] func(T)

// Stream is a synchronous fan-out point for values of type T.
type Stream[T any] struct {
	mu     sync.Mutex
	pubMu  sync.Mutex
	nextID int
	order  []int
	subs   map[int]Handler[T]
}

// New creates an empty stream.
func New[T any]() *Stream[T] {
	return &Stream[T]{subs: make(map[int]Handler[T])}
}

// Subscribe registers a handler and returns its subscription handle.
func (s *Stream[T]) Subscribe(h Handler[T]) *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.order = append(s.order, id)
	s.subs[id] = h
	return &Subscription[T]{stream: s, id: id}
}

// SubscriberCount returns the number of live subscriptions.
func (s *Stream[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Publish delivers v synchronously to every subscriber, in subscription
// order. Concurrent publishers are serialized so subscribers observe all
// values in publish order.
func (s *Stream[T]) Publish(v T) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	ids := make([]int, len(s.order))
	copy(ids, s.order)
	s.mu.Unlock()

	for _, id := range ids {
		// Re-check liveness: the handler may have been unsubscribed by an
		// earlier handler in this very delivery round.
		s.mu.Lock()
		h, ok := s.subs[id]
		s.mu.Unlock()
		if ok {
			h(v)
		}
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription[T any] struct {
	stream *Stream[T]
	once   sync.Once
	id     int
}

// Close unsubscribes the handler. Closing an already closed subscription is a
// no-op. Safe to call from within a handler invocation.
func (sub *Subscription[T]) Close() {
	sub.once.Do(func() {
		s := sub.stream
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subs, sub.id)
		for i, id := range s.order {
			if id == sub.id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	})
}

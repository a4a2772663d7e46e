// Package observe implements a small publish/subscribe hub used by the
// client services to push immutable state snapshots to observers.
package observe

import (
	"sort"
	"sync"
)

// Hub fans out values of type T to registered subscribers.
//
// Publish calls subscribers synchronously, in subscription order, on the
// publishing goroutine, and never while holding the hub's lock, so a
// subscriber may call back into Subscribe or the unsubscribe func.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(T)
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uint64]func(T))}
}

// Subscribe registers fn and returns a func that removes it. The returned
// func is idempotent.
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers v to every current subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len reports the number of subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops all subscribers.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.subs)
}

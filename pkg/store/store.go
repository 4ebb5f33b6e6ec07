// Package store holds the in-memory record collections that back each card.
// A Collection preserves insertion order, hands out copies on read and
// notifies subscribers after every mutation so views can re-render.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-cards/pkg/model"
)

// ErrNotFound is returned when a record id is not present in a collection.
var ErrNotFound = errors.New("store: record not found")

// Listener receives a snapshot of the collection after a mutation.
type Listener[T model.Record] func(items []T)

// Collection is a mutex guarded, ordered list of records.
type Collection[T model.Record] struct {
	mu        sync.RWMutex
	items     []T
	listeners map[int]Listener[T]
	nextSub   int

	// pending snapshots are queued under mu, so the queue is in mutation
	// order; one caller at a time drains it.
	deliverMu  sync.Mutex
	pending    [][]T
	delivering bool
}

// New creates a collection seeded with items.
func New[T model.Record](items ...T) *Collection[T] {
	return &Collection[T]{
		items:     slices.Clone(items),
		listeners: make(map[int]Listener[T]),
	}
}

// AddOne appends a record.
func (c *Collection[T]) AddOne(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.enqueueLocked()
	c.mu.Unlock()

	c.drain()
}

// AddAll appends records in order.
func (c *Collection[T]) AddAll(items ...T) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, items...)
	c.enqueueLocked()
	c.mu.Unlock()

	c.drain()
}

// DeleteOne removes the first record whose id matches.
func (c *Collection[T]) DeleteOne(id int) error {
	c.mu.Lock()
	idx := slices.IndexFunc(c.items, func(item T) bool { return item.RecordID() == id })
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	c.enqueueLocked()
	c.mu.Unlock()

	c.drain()
	return nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Items returns a copy of the current records in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// MaxID returns the highest record id, or zero for an empty collection.
func (c *Collection[T]) MaxID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	highest := 0
	for _, item := range c.items {
		if id := item.RecordID(); id > highest {
			highest = id
		}
	}
	return highest
}

// Subscribe registers fn to be called after each mutation. The returned
// function removes the subscription.
//
// Listeners run outside the collection lock, in subscription order, and may
// mutate the collection. Snapshots are delivered in mutation order: a
// mutation made from inside a listener is delivered once the current round
// has finished, never before it.
func (c *Collection[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// enqueueLocked records a snapshot of the current items. c.mu must be held.
func (c *Collection[T]) enqueueLocked() {
	if len(c.listeners) == 0 {
		return
	}
	snapshot := slices.Clone(c.items)
	c.deliverMu.Lock()
	c.pending = append(c.pending, snapshot)
	c.deliverMu.Unlock()
}

// drain delivers queued snapshots unless another call is already doing so.
// That call picks up anything queued meanwhile before it returns.
func (c *Collection[T]) drain() {
	c.deliverMu.Lock()
	if c.delivering {
		c.deliverMu.Unlock()
		return
	}
	c.delivering = true

	finished := false
	defer func() {
		if finished {
			return
		}
		// a listener panicked
		c.deliverMu.Lock()
		c.delivering = false
		c.deliverMu.Unlock()
	}()

	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.deliverMu.Unlock()

		c.deliver(next)

		c.deliverMu.Lock()
	}
	c.pending = nil
	c.delivering = false
	finished = true
	c.deliverMu.Unlock()
}

func (c *Collection[T]) deliver(snapshot []T) {
	c.mu.RLock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener[T], 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, c.listeners[id])
	}
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(slices.Clone(snapshot))
	}
}

// TeacherStore is the collection backing teacher cards.
type TeacherStore = Collection[model.Teacher]

// StudentStore is the collection backing student cards.
type StudentStore = Collection[model.Student]

// NewTeacherStore creates an empty or seeded teacher collection.
func NewTeacherStore(items ...model.Teacher) *TeacherStore {
	return New(items...)
}

// NewStudentStore creates an empty or seeded student collection.
func NewStudentStore(items ...model.Student) *StudentStore {
	return New(items...)
}

package core

import (
	"sync"
	"sync/atomic"
)

// ListenerID identifies a registration so it can be removed later.
type ListenerID uint64

type registeredListener[E any] struct {
	id       ListenerID
	callback func(E)
}

// Dispatcher keeps an ordered list of listeners for one kind of event.
// Listeners are invoked in registration order. A Dispatcher is safe for
// concurrent use; callbacks run outside the internal lock so they may
// register or unregister listeners themselves.
type Dispatcher[E any] struct {
	mu        sync.RWMutex
	ids       *atomic.Uint64
	listeners []*registeredListener[E]
}

func NewDispatcher[E any]() *Dispatcher[E] {
	return NewDispatcherWithIDs[E](new(atomic.Uint64))
}

// NewDispatcherWithIDs draws listener ids from ids. Dispatchers sharing one
// source never hand out the same ListenerID.
func NewDispatcherWithIDs[E any](ids *atomic.Uint64) *Dispatcher[E] {
	return &Dispatcher[E]{ids: ids}
}

// Register appends callback to the listener list. A nil callback is ignored
// and returns the zero ListenerID.
func (d *Dispatcher[E]) Register(callback func(E)) ListenerID {
	if callback == nil {
		return 0
	}
	id := ListenerID(d.ids.Add(1))

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, &registeredListener[E]{
		id:       id,
		callback: callback,
	})
	return id
}

// Unregister removes the listener with the given id. Returns false when no
// listener matched.
func (d *Dispatcher[E]) Unregister(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

// Len returns the number of registered listeners.
func (d *Dispatcher[E]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Fire delivers event to every listener registered at the time of the call.
func (d *Dispatcher[E]) Fire(event E) {
	d.mu.RLock()
	snapshot := make([]*registeredListener[E], len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, l := range snapshot {
		l.callback(event)
	}
}

// Clear drops every listener.
func (d *Dispatcher[E]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = nil
}

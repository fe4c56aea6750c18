package schedule

import (
	"sync"

	"go.uber.org/zap"
)

// Handle is an opaque reference to an entry in a Registry.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Dropper is implemented by values that release resources when removed.
type Dropper interface {
	Drop()
}

// Registry hands out handles for long-lived values such as running tasks,
// and drops every remaining value on Close.
type Registry struct {
	mu      sync.Mutex
	entries map[Handle]Dropper
	next    Handle
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Handle]Dropper),
		next:    1,
	}
}

// Insert adds a value and returns its handle, or 0 if the registry is closed.
func (r *Registry) Insert(v Dropper) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0
	}
	h := r.next
	r.next++
	if r.next == 0 {
		r.next = 1
	}
	r.entries[h] = v
	return h
}

// Get retrieves a value by handle.
func (r *Registry) Get(h Handle) (Dropper, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[h]
	return v, ok
}

// Remove drops the value and returns (value, true) if found.
func (r *Registry) Remove(h Handle) (Dropper, bool) {
	r.mu.Lock()
	v, ok := r.entries[h]
	delete(r.entries, h)
	r.mu.Unlock()

	if !ok {
		return nil, false
	}
	v.Drop()
	return v, true
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close drops every entry and stops accepting new ones.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.closed = true
	entries := r.entries
	r.entries = make(map[Handle]Dropper)
	r.mu.Unlock()

	for h, v := range entries {
		v.Drop()
		Logger().Debug("registry entry dropped", zap.Uint32("handle", uint32(h)))
	}
	return nil
}

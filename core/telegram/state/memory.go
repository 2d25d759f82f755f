package state

import "sync"

type entry[T any] struct {
	mu   sync.Mutex
	val  *T
	dead bool
}

type memoryStore[T any] struct {
	mu      sync.Mutex
	entries map[int64]*entry[T]
}

// NewMemoryStore constructs an in-memory Store. Sessions are lost on restart.
func NewMemoryStore[T any]() Store[T] {
	return &memoryStore[T]{
		entries: make(map[int64]*entry[T]),
	}
}

// acquire returns the locked entry for key, creating it if necessary.
// The map lock is never held while waiting on an entry.
func (m *memoryStore[T]) acquire(key int64) *entry[T] {
	for {
		m.mu.Lock()
		e, ok := m.entries[key]
		if !ok {
			e = &entry[T]{}
			m.entries[key] = e
		}
		m.mu.Unlock()

		e.mu.Lock()
		if !e.dead {
			return e
		}
		// removed while we were waiting; retry with a fresh entry
		e.mu.Unlock()
	}
}

// Do runs fn while holding the conversation lock.
func (m *memoryStore[T]) Do(key int64, fn func(cur *T) *T) {
	e := m.acquire(key)
	defer e.mu.Unlock()

	next := fn(e.val)
	e.val = next
	if next == nil {
		m.drop(key, e)
	}
}

// drop detaches e from the map; the caller holds e.mu.
func (m *memoryStore[T]) drop(key int64, e *entry[T]) {
	e.dead = true
	m.mu.Lock()
	if cur, ok := m.entries[key]; ok && cur == e {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// Get returns a shallow copy of the session for key.
func (m *memoryStore[T]) Get(key int64) (T, bool) {
	var zero T
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dead || e.val == nil {
		return zero, false
	}
	return *e.val, true
}

// Has reports whether a live session exists for key.
func (m *memoryStore[T]) Has(key int64) bool {
	_, ok := m.Get(key)
	return ok
}

// Clear removes the session for key.
func (m *memoryStore[T]) Clear(key int64) {
	m.Do(key, func(*T) *T { return nil })
}

// Len returns the number of conversations with a live session.
func (m *memoryStore[T]) Len() int {
	m.mu.Lock()
	entries := make([]*entry[T], 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		if !e.dead && e.val != nil {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

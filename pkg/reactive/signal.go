package reactive

import (
	"sync"
)

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Watch(fn func(T)) (cancel func())
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Watchers notified after every write, keyed by registration id
	watchers  map[uint64]func(T)
	order     []uint64
	nextID    uint64
	watcherMu sync.RWMutex
}

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:    initial,
		watchers: make(map[uint64]func(T)),
	}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies watchers
func (s *State[T]) Set(value T) {
	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify(value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	s.value = fn(oldValue)
	newValue := s.value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Update called, old:", oldValue, "new:", newValue)
	}

	s.notify(newValue)
}

// Watch registers fn to run after every write. The returned cancel func
// removes it and may be called more than once.
func (s *State[T]) Watch(fn func(T)) (cancel func()) {
	s.watcherMu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	s.order = append(s.order, id)
	s.watcherMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.watcherMu.Lock()
			defer s.watcherMu.Unlock()
			delete(s.watchers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Watchers returns the number of registered watchers
func (s *State[T]) Watchers() int {
	s.watcherMu.RLock()
	defer s.watcherMu.RUnlock()
	return len(s.watchers)
}

func (s *State[T]) notify(value T) {
	// Copy outside the lock so watchers may cancel themselves
	s.watcherMu.RLock()
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.watchers[id])
	}
	s.watcherMu.RUnlock()

	if debugLog != nil {
		debugLog("[State] Notifying", len(fns), "watchers")
	}

	for _, fn := range fns {
		fn(value)
	}
}

package surface

import "sync"

// PointerKind distinguishes global pointer events
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerUp
)

// PointerEvent is one event from the global pointer stream
type PointerEvent struct {
	Kind     PointerKind
	Position Coordinate
}

// PointerSource is the process-wide pointer stream a controller tracks
// while a handle is held. Subscribe returns a func that removes the listener.
type PointerSource interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}

// Bus is an in-process PointerSource. Publish delivers to subscribers in
// registration order on the caller's goroutine.
type Bus struct {
	mu     sync.Mutex
	subs   map[uint64]func(PointerEvent)
	order  []uint64
	nextID uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]func(PointerEvent))}
}

// Subscribe implements PointerSource
func (b *Bus) Subscribe(fn func(PointerEvent)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish sends ev to every subscriber
func (b *Bus) Publish(ev PointerEvent) {
	b.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Move publishes a PointerMove at (x, y)
func (b *Bus) Move(x, y float64) {
	b.Publish(PointerEvent{Kind: PointerMove, Position: Coordinate{X: x, Y: y}})
}

// Up publishes a PointerUp at (x, y)
func (b *Bus) Up(x, y float64) {
	b.Publish(PointerEvent{Kind: PointerUp, Position: Coordinate{X: x, Y: y}})
}

// Len returns the number of live subscriptions
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

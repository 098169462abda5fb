package state

import "sync"

// Event names a cross-container notification.
type Event string

// SessionEnded fires when logout succeeds. Containers that must reset
// on logout subscribe to it instead of being mutated from outside.
const SessionEnded Event = "session_ended"

// Bus is a minimal synchronous publish/subscribe hub for session
// lifecycle events. Handlers run on the publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Event][]func()
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]func())}
}

// Subscribe registers a handler for the event.
func (b *Bus) Subscribe(event Event, handler func()) {
	b.mu.Lock()
	b.handlers[event] = append(b.handlers[event], handler)
	b.mu.Unlock()
}

// Publish invokes every handler registered for the event.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]func(){}, b.handlers[event]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler()
	}
}

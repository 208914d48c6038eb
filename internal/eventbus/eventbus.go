package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"rungrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventExperimentsUpdated = domain.EventExperimentsUpdated
	EventRefreshRequested   = domain.EventRefreshRequested
	EventServerError        = domain.EventServerError
	EventConfigChanged      = domain.EventConfigChanged
)

// Re-export domain event types
type ExperimentsUpdatedEvent = domain.ExperimentsUpdatedEvent
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type ServerErrorEvent = domain.ServerErrorEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]EventHandler
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]EventHandler),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. Never blocks: when the
// channel is full the event is dropped with a log line.
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	default:
		log.Printf("event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	idx := len(b.handlers[eventType]) - 1

	// The slot is nilled rather than spliced out so the indices other
	// unsubscribe closures captured stay valid.
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		handlers := b.handlers[eventType]
		if idx < len(handlers) {
			handlers[idx] = nil
		}
	}
}

// Close stops the dispatcher. Pending events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			registered := b.handlers[event.Type()]
			handlers := make([]EventHandler, 0, len(registered))
			for _, h := range registered {
				if h != nil {
					handlers = append(handlers, h)
				}
			}
			b.mu.RUnlock()

			for _, handler := range handlers {
				b.call(handler, event)
			}

		case <-b.quit:
			return
		}
	}
}

// call invokes one handler, keeping a panicking subscriber from taking the
// dispatcher down with it.
func (b *bus) call(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event handler panic for %s: %v\n%s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}

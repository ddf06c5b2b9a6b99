// Package event is a synchronous in-process publish/subscribe bus.
package event

import (
	"sync"

	"userauth/internal/domain"
	"userauth/internal/logger"
)

type Handler func(event any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      logger.Logger
}

var _ domain.EventPublisher = (*Bus)(nil)

func New(log logger.Logger) *Bus {
	if log == nil {
		log = logger.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

func (b *Bus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish runs every handler of eventName on the caller's goroutine.
// A panicking handler is logged and does not stop the others.
func (b *Bus) Publish(eventName string, event any) {
	b.mu.RLock()
	handlers := b.handlers[eventName]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(eventName, h, event)
	}
}

func (b *Bus) dispatch(eventName string, h Handler, event any) {
	defer func() {
		if p := recover(); p != nil {
			b.log.Error("event: handler panic", "event", eventName, "panic", p)
		}
	}()
	h(event)
}

// ABOUTME: Fire-and-forget publish/subscribe bus for post-mutation events
// ABOUTME: Subscriber failures are isolated, logged, and never reach the publisher
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	ID         uuid.UUID
	Topic      string
	Payload    any
	OccurredAt time.Time
}

// Handler processes one event. A returned error is logged, never propagated.
type Handler func(Event) error

// Bus is an in-process publish/subscribe dispatcher. Publish never blocks on
// subscribers and never fails: handlers run concurrently, panics are
// recovered, and errors are logged. Delivery order between subscribers is
// unspecified.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]Handler
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:   make(map[string][]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], handler)
}

// Publish dispatches the event to every subscriber of the topic and returns
// immediately. The mutation that triggered the event is considered successful
// regardless of handler outcome.
func (b *Bus) Publish(topic string, payload any) {
	event := Event{
		ID:         uuid.New(),
		Topic:      topic,
		Payload:    payload,
		OccurredAt: time.Now(),
	}

	b.mu.RLock()
	handlers := b.subs[topic]
	b.mu.RUnlock()

	for _, handler := range handlers {
		h := handler
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panicked", "topic", topic, "event_id", event.ID, "panic", r)
				}
			}()
			if err := h(event); err != nil {
				b.logger.Error("event handler failed", "topic", topic, "event_id", event.ID, "error", err)
			}
		}()
	}
}

// Wait blocks until in-flight handlers finish. Used by tests and shutdown.
func (b *Bus) Wait() {
	b.wg.Wait()
}

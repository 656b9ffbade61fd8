// Package events carries domain events from the core services to independent
// subscribers (logging, notifications). Services never call subscribers directly.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event.
type Type string

const (
	CreatorProfileCreated Type = "creator.profile_created"
	CreatorProfileUpdated Type = "creator.profile_updated"
	TemplateCreated       Type = "template.created"
	TemplateUpdated       Type = "template.updated"
	TemplatePublished     Type = "template.published"
	AffiliateLinkCreated  Type = "affiliate_link.created"
)

// Event is an immutable record of something that happened in the core.
type Event struct {
	Type       Type
	ActorID    uuid.UUID // user who caused the event
	EntityID   uuid.UUID
	Data       map[string]any
	OccurredAt time.Time
}

// Publisher accepts events from services.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Handler consumes events.
type Handler func(ctx context.Context, e Event)

// Bus fans events out to subscribers synchronously, in subscription order.
// A panicking subscriber is logged and does not affect the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	log      *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log.With("component", "events")}
}

// Subscribe registers h for all events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(ctx, h, e)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.ErrorContext(ctx, "event subscriber panicked",
				slog.String("event", string(e.Type)),
				slog.Any("panic", r),
			)
		}
	}()
	h(ctx, e)
}

// LogSubscriber writes every event as a structured log line.
func LogSubscriber(log *slog.Logger) Handler {
	return func(ctx context.Context, e Event) {
		log.InfoContext(ctx, "domain event",
			slog.String("event", string(e.Type)),
			slog.String("actor_id", e.ActorID.String()),
			slog.String("entity_id", e.EntityID.String()),
			slog.Any("data", e.Data),
		)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("room event",
		zap.String("event_type", event.Type),
		zap.String("room_id", event.RoomID.String()),
		zap.String("reservation_id", event.ReservationID.String()),
		zap.Time("occurred_at", event.OccurredAt),
		zap.Any("data", event.Data))
	return nil
}

// MemoryPublisher keeps published events in order. Handy for tests and local tooling.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MemoryPublisher) Types() []string {
	events := p.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

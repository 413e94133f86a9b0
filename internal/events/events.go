package events

import (
	"server/internal/logger"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ChannelLeads    = "leads"
	TypeLeadCreated = "lead.created"

	subscriberBuffer = 16
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus is a small in-process pub/sub used to push new-lead events to
// connected admin websockets. Publishes never block: a subscriber that falls
// behind drops events rather than stalling the publisher.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[string]map[string]chan Event
	closed bool
	log    logger.Logger
}

func New() *EventBus {
	return &EventBus{
		subs: make(map[string]map[string]chan Event),
		log:  logger.New("events"),
	}
}

func (b *EventBus) Subscribe(channel string) (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Event, subscriberBuffer)

	if b.subs[channel] == nil {
		b.subs[channel] = make(map[string]chan Event)
	}
	b.subs[channel][id] = ch

	return id, ch
}

func (b *EventBus) Unsubscribe(channel, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subs[channel]; ok {
		if ch, ok := subs[id]; ok {
			delete(subs, id)
			close(ch)
		}
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return log.Error("event bus is closed", "channel", channel)
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Channel = channel

	for id, ch := range b.subs[channel] {
		select {
		case ch <- event:
		default:
			log.Warn("subscriber buffer full, dropping event",
				"channel", channel, "subscriber", id, "eventType", event.Type)
		}
	}

	return nil
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for channel, subs := range b.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
		delete(b.subs, channel)
	}

	return nil
}

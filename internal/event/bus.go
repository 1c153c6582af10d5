// Package event implements the update broadcast shared by open views.
package event

import (
	"sort"
	"sync"
)

// Handler receives the payload of a published event.
type Handler func(payload any)

// Bus is a topic-based publish/subscribe channel. Handlers run on the
// publishing goroutine, in subscription order. The zero value is not usable;
// call NewBus.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	topics map[string]map[uint64]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{topics: make(map[string]map[uint64]Handler)}
}

// Subscription is the handle returned by Subscribe. It must be released with
// Unsubscribe when the subscriber goes away.
type Subscription struct {
	bus   *Bus
	topic string
	id    uint64
	once  sync.Once
}

// Subscribe registers h for topic.
func (b *Bus) Subscribe(topic string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[uint64]Handler)
		b.topics[topic] = subs
	}
	subs[b.nextID] = h
	return &Subscription{bus: b, topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

// Topic returns the topic the subscription listens on.
func (s *Subscription) Topic() string { return s.topic }

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
}

// Publish delivers payload to every handler subscribed to topic and returns
// the number of handlers called.
func (b *Bus) Publish(topic string, payload any) int {
	b.mu.Lock()
	subs := b.topics[topic]
	ids := make([]uint64, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, subs[id])
	}
	b.mu.Unlock()

	// handlers may subscribe or unsubscribe, so they run without the lock
	for _, h := range handlers {
		h(payload)
	}
	return len(handlers)
}

// ListenerCount returns the number of handlers registered for topic.
func (b *Bus) ListenerCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

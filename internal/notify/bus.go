package notify

import "sync"

// Handler receives events from a Bus.
type Handler func(Event)

// Publisher is the sending side of a Bus.
type Publisher interface {
	Publish(evt Event)
}

type subscription struct {
	id      uint64
	name    Name // empty for all events
	handler Handler
}

// Bus delivers events synchronously to subscribers in subscription order.
// Handlers run on the publishing goroutine and must not block; use a
// ChannelSubscriber to hand events to another goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for events named name and returns a function that
// removes it. The returned function is safe to call more than once.
func (b *Bus) Subscribe(name Name, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, handler: h})

	return func() { b.unsubscribe(id) }
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) (unsubscribe func()) {
	return b.Subscribe("", h)
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers evt to every matching subscriber. Subscribers added or
// removed by a handler take effect from the next Publish.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		if s.name == "" || s.name == evt.Name() {
			s.handler(evt)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

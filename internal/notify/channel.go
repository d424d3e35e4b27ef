package notify

import "sync"

// ChannelSubscriber buffers events for a consumer on another goroutine.
// When the buffer is full the oldest event is dropped so publishers never
// block.
type ChannelSubscriber struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSubscriber creates a subscriber holding up to size events.
func NewChannelSubscriber(size int) *ChannelSubscriber {
	if size < 1 {
		size = 64
	}
	return &ChannelSubscriber{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Handle queues evt. It has the Handler signature so it can be passed to
// Bus.Subscribe directly.
func (s *ChannelSubscriber) Handle(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel events are delivered on.
func (s *ChannelSubscriber) Events() <-chan Event {
	return s.events
}

// Done is closed by Close.
func (s *ChannelSubscriber) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. Safe to call multiple times.
func (s *ChannelSubscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

package session

import "sync"

// Event is something the controller reports to the presentation layer.
type Event interface {
	sessionEvent()
}

// WinEvent fires once per game, the first time a committed board holds WinTile.
type WinEvent struct {
	Score       int
	HighestTile int
}

func (WinEvent) sessionEvent() {}

// GameOverEvent fires when no legal move remains.
type GameOverEvent struct {
	Result GameResult
}

func (GameOverEvent) sessionEvent() {}

// StatsEvent carries a fresh copy of the player's statistics.
type StatsEvent struct {
	Stats PlayerStats
}

func (StatsEvent) sessionEvent() {}

// EventSink receives controller events. Send must not block.
type EventSink interface {
	Send(evt Event)
}

// NopSink discards every event.
type NopSink struct{}

// Send implements EventSink.
func (NopSink) Send(Event) {}

// ChannelSink buffers events on a channel for a consumer such as a Bubble Tea
// command or a websocket writer. When the buffer is full the oldest event is
// dropped.
type ChannelSink struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSink creates a sink holding up to size events.
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 16
	}
	return &ChannelSink{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Send queues evt, dropping the oldest queued event if the buffer is full.
func (s *ChannelSink) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Events returns the receive side of the buffer.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Drain returns every queued event without blocking.
func (s *ChannelSink) Drain() []Event {
	var out []Event
	for {
		select {
		case evt := <-s.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Done is closed by Close.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. Safe to call more than once.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

package eventhub

import (
	"errors"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

var ErrAnonymousSubscriber = errors.New("subscriber identity is required")

// Subscription is one open stream of events for an identity.
type Subscription struct {
	hub      *Hub
	identity kernel.Identity
	events   chan ports.Event
	done     chan struct{}

	once sync.Once
}

// Events is closed once the subscription is released.
func (s *Subscription) Events() <-chan ports.Event {
	return s.events
}

// Done is closed once the subscription is released.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) Identity() kernel.Identity {
	return s.identity
}

// Close is idempotent and safe to call from any goroutine.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.done)
	})
}

// offer is called with the hub lock held. It reports false when the oldest
// buffered event had to be discarded to make room.
func (s *Subscription) offer(event ports.Event) bool {
	select {
	case s.events <- event:
		return true
	default:
	}

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- event:
	default:
	}
	return false
}

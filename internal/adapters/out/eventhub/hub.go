// Package eventhub is the in-process registry of real-time subscriptions.
//
// Subscriptions are keyed by identity. Publishing never blocks: every
// subscription owns a bounded buffer and loses its oldest event when the
// buffer is full. Events for an identity without subscribers are dropped.
//
// Example:
//
//	hub := eventhub.New(16, m, logger)
//	sub, err := hub.Subscribe(ctx, identity)
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
//	for event := range sub.Events() {
//	    // write event to the client
//	}
package eventhub

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

var ErrHubClosed = errors.New("event hub is closed")

const DefaultBufferSize = 16

// Hub implements ports.EventPublisher. One mutex guards the registry and
// every send, so a subscription channel is never written after it is closed.
type Hub struct {
	mu         sync.Mutex
	subs       map[kernel.Identity]map[*Subscription]struct{}
	bufferSize int
	closed     bool

	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ ports.EventPublisher = (*Hub)(nil)

func New(bufferSize int, m *metrics.Metrics, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subs:       make(map[kernel.Identity]map[*Subscription]struct{}),
		bufferSize: bufferSize,
		metrics:    m,
		logger:     logger.With("component", "event_hub"),
	}
}

// Subscribe registers a new subscription for identity. It is released when
// ctx is done, when Close is called on it, or when the hub closes.
func (h *Hub) Subscribe(ctx context.Context, identity kernel.Identity) (*Subscription, error) {
	if identity.IsZero() {
		return nil, ErrAnonymousSubscriber
	}

	s := &Subscription{
		hub:      h,
		identity: identity,
		events:   make(chan ports.Event, h.bufferSize),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	set, ok := h.subs[identity]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[identity] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	h.metrics.Subscribers.Inc()
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	h.logger.DebugContext(ctx, "subscription opened", "identity", identity.String())
	return s, nil
}

// Publish delivers event to every open subscription of recipient.
func (h *Hub) Publish(ctx context.Context, recipient kernel.Identity, event ports.Event) error {
	eventType := string(event.Type)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	set := h.subs[recipient]
	if len(set) == 0 {
		h.metrics.EventsPublished.WithLabelValues(eventType, metrics.EventDropped).Inc()
		h.logger.DebugContext(ctx, "no subscribers, event dropped",
			"identity", recipient.String(),
			"type", eventType,
		)
		return nil
	}

	for s := range set {
		if s.offer(event) {
			h.metrics.EventsPublished.WithLabelValues(eventType, metrics.EventDelivered).Inc()
			continue
		}
		h.metrics.EventsPublished.WithLabelValues(eventType, metrics.EventOverflow).Inc()
		h.logger.WarnContext(ctx, "subscriber buffer full, oldest event dropped",
			"identity", recipient.String(),
			"type", eventType,
		)
	}

	return nil
}

// SubscriberCount returns the number of open subscriptions of identity.
func (h *Hub) SubscriberCount(identity kernel.Identity) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[identity])
}

// Len returns the number of identities with at least one open subscription.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close releases every subscription. Later Subscribe and Publish calls
// return ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []*Subscription
	for _, set := range h.subs {
		for s := range set {
			all = append(all, s)
		}
	}
	h.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[s.identity]
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(h.subs, s.identity)
	}
	close(s.events)
	h.metrics.Subscribers.Dec()
}

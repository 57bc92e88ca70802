// Package effects runs the side effects of a committed command: real-time
// events and push notifications. Commands only describe effects; they are
// executed after the unit of work is committed, so a failing effect can never
// roll back a state change. Failures are logged and counted, never returned.
package effects

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

type Kind int

const (
	KindPublishEvent Kind = iota + 1
	KindPush
)

func (k Kind) String() string {
	switch k {
	case KindPublishEvent:
		return "publish_event"
	case KindPush:
		return "push"
	default:
		return "unknown"
	}
}

// Effect is a single deferred side effect.
type Effect struct {
	Kind      Kind
	Recipient kernel.Identity
	Event     ports.Event
	Push      ports.PushMessage
}

// PublishEvent describes an event for every open subscription of recipient.
func PublishEvent(recipient kernel.Identity, event ports.Event) Effect {
	return Effect{Kind: KindPublishEvent, Recipient: recipient, Event: event}
}

// Push describes a best-effort mobile notification.
func Push(msg ports.PushMessage) Effect {
	return Effect{Kind: KindPush, Push: msg}
}

// Runner executes effects. Events are published inline since publishing never
// blocks; pushes run on their own goroutine and can be awaited with Wait.
type Runner struct {
	publisher ports.EventPublisher
	notifier  ports.PushNotifier
	metrics   *metrics.Metrics
	logger    *slog.Logger

	wg sync.WaitGroup
}

func NewRunner(
	publisher ports.EventPublisher,
	notifier ports.PushNotifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		publisher: publisher,
		notifier:  notifier,
		metrics:   m,
		logger:    logger.With("component", "effects"),
	}
}

// Run executes every effect. The request context may already be gone when an
// asynchronous push runs, so pushes keep its values but not its cancellation.
func (r *Runner) Run(ctx context.Context, list []Effect) {
	for _, e := range list {
		switch e.Kind {
		case KindPublishEvent:
			if err := r.publisher.Publish(ctx, e.Recipient, e.Event); err != nil {
				r.fail(ctx, e, err)
			}
		case KindPush:
			detached := context.WithoutCancel(ctx)
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				if err := r.notifier.Notify(detached, e.Push); err != nil {
					r.fail(detached, e, err)
				}
			}()
		default:
			r.logger.WarnContext(ctx, "unknown effect skipped", "kind", int(e.Kind))
		}
	}
}

// Wait blocks until every asynchronous effect started by Run has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) fail(ctx context.Context, e Effect, err error) {
	r.metrics.EffectFailures.WithLabelValues(e.Kind.String()).Inc()
	r.logger.ErrorContext(ctx, "post-commit effect failed",
		"effect", e.Kind.String(),
		"recipient", e.Recipient.String(),
		"event", string(e.Event.Type),
		"error", err,
	)
}

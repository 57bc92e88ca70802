// Package notifyrelay fans real-time events out across service instances
// through PostgreSQL LISTEN/NOTIFY.
//
// Publisher sends every event to a channel with pg_notify. Each instance runs
// a Listener on the same channel that hands received events to its local hub,
// so a driver connected to instance A sees a status change committed on B.
// Delivery stays best effort: notifications sent while a listener is
// reconnecting are lost.
package notifyrelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const DefaultChannel = "assignment_events"

// Postgres rejects NOTIFY payloads of 8000 bytes or more.
const maxPayload = 7999

var ErrPayloadTooLarge = errors.New("notification payload too large")

type envelope struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Event  ports.Event `json:"event"`
}

// Publisher implements ports.EventPublisher on top of pg_notify.
type Publisher struct {
	db      *gorm.DB
	channel string
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(db *gorm.DB, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{db: db, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, recipient kernel.Identity, event ports.Event) error {
	payload, err := json.Marshal(envelope{
		UserID: recipient.UserID(),
		Email:  recipient.Email(),
		Event:  event,
	})
	if err != nil {
		return err
	}
	if len(payload) > maxPayload {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	return p.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", p.channel, string(payload)).Error
}

// Listener forwards notifications of one channel to a local publisher.
type Listener struct {
	dsn     string
	channel string
	local   ports.EventPublisher
	logger  *slog.Logger

	minReconnect time.Duration
	maxReconnect time.Duration
	pingInterval time.Duration
}

func NewListener(dsn, channel string, local ports.EventPublisher, logger *slog.Logger) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Listener{
		dsn:          dsn,
		channel:      channel,
		local:        local,
		logger:       logger.With("component", "notify_relay", "channel", channel),
		minReconnect: 1 * time.Second,
		maxReconnect: 30 * time.Second,
		pingInterval: 90 * time.Second,
	}
}

// Run blocks until ctx is done. ready, when not nil, is closed once the
// channel is being listened on.
func (l *Listener) Run(ctx context.Context, ready chan<- struct{}) error {
	listener := pq.NewListener(l.dsn, l.minReconnect, l.maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			l.logger.WarnContext(ctx, "listener connection problem", "event", int(ev), "error", err)
		case pq.ListenerEventReconnected:
			l.logger.InfoContext(ctx, "listener reconnected")
		}
	})
	defer func() {
		_ = listener.Close()
	}()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	if ready != nil {
		close(ready)
	}
	l.logger.InfoContext(ctx, "relay listening")

	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.InfoContext(context.WithoutCancel(ctx), "relay stopped")
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect; anything sent meanwhile is gone.
			if n == nil {
				continue
			}
			l.forward(ctx, n.Extra)
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					l.logger.WarnContext(ctx, "listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (l *Listener) forward(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		l.logger.ErrorContext(ctx, "malformed notification", "error", err)
		return
	}

	recipient, err := kernel.NewIdentity(env.UserID, env.Email)
	if err != nil {
		l.logger.ErrorContext(ctx, "notification without valid recipient", "error", err)
		return
	}

	if err = l.local.Publish(ctx, recipient, env.Event); err != nil {
		l.logger.ErrorContext(ctx, "local publish failed",
			"recipient", recipient.String(),
			"type", string(env.Event.Type),
			"error", err,
		)
	}
}

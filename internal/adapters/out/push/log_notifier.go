// Package push holds the PushNotifier used while no mobile push provider is
// configured: every message is written to the log instead.
package push

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.PushNotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "push")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg ports.PushMessage) error {
	n.logger.InfoContext(ctx, "push notification",
		"driver", msg.DriverEmail,
		"assignment_id", msg.AssignmentID,
		"title", msg.Title,
		"body", msg.Body,
	)
	return nil
}

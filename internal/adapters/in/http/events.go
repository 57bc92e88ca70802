package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	DefaultHeartbeat = 15 * time.Second

	// Sent as the SSE retry field so browsers reconnect after a drop.
	reconnectDelay = 5 * time.Second
)

// StreamEvents handles GET /api/v1/events as a server-sent events stream of
// the caller's hub events. The subscription is released when the client
// disconnects.
func (s *Server) StreamEvents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	sub, err := s.hub.Subscribe(reqCtx, identityFrom(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	defer sub.Close()

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err = fmt.Fprintf(w, "retry: %d\n\n", reconnectDelay.Milliseconds()); err != nil {
		return nil
	}
	w.Flush()

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			data, marshalErr := json.Marshal(event)
			if marshalErr != nil {
				ctx.Logger().Errorf("encode event: %v", marshalErr)
				continue
			}
			if _, err = fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		case <-ticker.C:
			if _, err = fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

package attendance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/record"
	"github.com/clinicd/clinicd/internal/server"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log.With().Str("component", "attendance").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("clock", h.mark(StatusClock))
	r.Handle("leave", h.mark(StatusLeave))
	r.Handle("queryAttendance", h.handleQuery)
}

// mark builds the clock and leave handlers. The request data carries the
// work entry fields directly, not nested under a sub-object.
func (h *Handler) mark(status string) server.HandlerFunc {
	return func(ctx context.Context, sess server.Session, req *protocol.Request) {
		reply, err := h.svc.Mark(ctx, record.FromBody(req.Data), status)
		if err != nil {
			h.log.Error().Err(err).Str("status", status).Msg("work entry save failed")
			_ = sess.Send(protocol.Text("storageError"))
			return
		}
		_ = sess.Send(protocol.Text(reply))
	}
}

func (h *Handler) handleQuery(ctx context.Context, sess server.Session, req *protocol.Request) {
	username, ok := req.Data.String("username")
	if !ok {
		_ = sess.Send(protocol.Missing("username"))
		return
	}
	monthStr, ok := req.Data.String("month")
	if !ok {
		_ = sess.Send(protocol.Missing("month"))
		return
	}
	month := record.Digits(monthStr)
	if DaysIn(month) == 0 {
		_ = sess.Send(protocol.Text("failed"))
		return
	}

	summary, err := h.svc.Report(ctx, username, month)
	if err != nil {
		h.log.Error().Err(err).Msg("attendance query failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.WithData("successful", map[string]any{"attendance": summary}))
}

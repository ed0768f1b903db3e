package wellness

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
	return &Handler{svc: svc, log: log.With().Str("component", "wellness").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("modifyQuestion", h.handleModifyQuestion)
	r.Handle("queryChart", h.handleQueryChart)
}

func (h *Handler) handleModifyQuestion(ctx context.Context, sess server.Session, req *protocol.Request) {
	obj, ok := req.Data.Object("question")
	if !ok {
		_ = sess.Send(protocol.Missing("question"))
		return
	}

	reply, verdict, err := h.svc.Submit(ctx, record.FromBody(obj))
	if err != nil {
		h.log.Error().Err(err).Msg("questionnaire save failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	// The result key is always present; it carries null when the
	// submission was rejected for a missing field.
	var result any
	if verdict != "" {
		result = verdict
	}
	_ = sess.Send(protocol.WithData(reply, map[string]any{"result": result}))
}

func (h *Handler) handleQueryChart(ctx context.Context, sess server.Session, req *protocol.Request) {
	chart, err := h.svc.Chart(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("chart query failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.WithData("successful", map[string]any{"chart": chart}))
}

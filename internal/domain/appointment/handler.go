package appointment

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
	return &Handler{svc: svc, log: log.With().Str("component", "appointment").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("queryAppointmentList", h.list("appointment", h.svc.ListAppointments))
	r.Handle("queryCaseList", h.list("case", h.svc.ListCases))
	r.Handle("queryAdviceList", h.list("advice", h.svc.ListAdvice))
	r.Handle("modifyAppointment", h.handleModifyAppointment)
	r.Handle("modifyCase", h.modify("case", h.svc.SaveCase))
	r.Handle("modifyAdvice", h.modify("advice", h.svc.SaveAdvice))
}

type listFunc func(ctx context.Context, role, username string) ([]record.Fragment, error)

type saveFunc func(ctx context.Context, frag record.Fragment) (string, error)

// list builds the handler for the three role-keyed list commands. They all
// take username plus type and reply with numbered fragments.
func (h *Handler) list(prefix string, fn listFunc) server.HandlerFunc {
	return func(ctx context.Context, sess server.Session, req *protocol.Request) {
		username, ok := req.Data.String("username")
		if !ok {
			_ = sess.Send(protocol.Missing("username"))
			return
		}
		role, ok := req.Data.String("type")
		if !ok {
			_ = sess.Send(protocol.Missing("type"))
			return
		}

		frags, err := fn(ctx, role, username)
		if err != nil {
			h.log.Error().Err(err).Str("list", prefix).Msg("list query failed")
			_ = sess.Send(protocol.Text("storageError"))
			return
		}
		_ = sess.Send(protocol.WithData("successful", protocol.Numbered(prefix, frags)))
	}
}

func (h *Handler) modify(field string, fn saveFunc) server.HandlerFunc {
	return func(ctx context.Context, sess server.Session, req *protocol.Request) {
		obj, ok := req.Data.Object(field)
		if !ok {
			_ = sess.Send(protocol.Missing(field))
			return
		}

		reply, err := fn(ctx, record.FromBody(obj))
		if err != nil {
			h.log.Error().Err(err).Str("record", field).Msg("save failed")
			_ = sess.Send(protocol.Text("storageError"))
			return
		}
		_ = sess.Send(protocol.Text(reply))
	}
}

func (h *Handler) handleModifyAppointment(ctx context.Context, sess server.Session, req *protocol.Request) {
	obj, ok := req.Data.Object("appointment")
	if !ok {
		_ = sess.Send(protocol.Missing("appointment"))
		return
	}

	reply, err := h.svc.Accept(ctx, record.FromBody(obj))
	if err != nil {
		h.log.Error().Err(err).Msg("appointment acceptance failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.Text(reply))
}

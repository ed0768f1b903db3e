package notice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/record"
	"github.com/clinicd/clinicd/internal/server"
)

type Handler struct {
	repo Repository
	log  zerolog.Logger
}

func NewHandler(repo Repository, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log.With().Str("component", "notice").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("queryNoticeList", h.handleQueryList)
	r.Handle("modifyNotice", h.handleModify)
}

func (h *Handler) handleQueryList(ctx context.Context, sess server.Session, req *protocol.Request) {
	username, ok := req.Data.String("username")
	if !ok {
		_ = sess.Send(protocol.Missing("username"))
		return
	}
	recipientType, ok := req.Data.String("type")
	if !ok {
		_ = sess.Send(protocol.Missing("type"))
		return
	}

	notices, err := h.repo.ListFor(ctx, username, recipientType)
	if err != nil {
		h.log.Error().Err(err).Msg("notice query failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.WithData("successful", protocol.Numbered("notice", notices)))
}

func (h *Handler) handleModify(ctx context.Context, sess server.Session, req *protocol.Request) {
	obj, ok := req.Data.Object("notice")
	if !ok {
		_ = sess.Send(protocol.Missing("notice"))
		return
	}

	reply, err := h.repo.Add(ctx, record.FromBody(obj))
	if err != nil {
		h.log.Error().Err(err).Msg("notice save failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.Text(reply))
}

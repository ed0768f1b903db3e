package account

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/server"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log.With().Str("component", "account").Logger()}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("register", h.handleRegister)
	r.Handle("login", h.handleLogin)
}

func (h *Handler) handleRegister(ctx context.Context, sess server.Session, req *protocol.Request) {
	username, ok := req.Data.String("username")
	if !ok {
		_ = sess.Send(protocol.Missing("username"))
		return
	}
	accountType, ok := req.Data.String("type")
	if !ok {
		_ = sess.Send(protocol.Missing("type"))
		return
	}
	password, ok := req.Data.String("password")
	if !ok {
		_ = sess.Send(protocol.Missing("password"))
		return
	}

	reply, err := h.svc.Register(ctx, username, accountType, password)
	if err != nil {
		h.log.Error().Err(err).Str("username", username).Msg("register failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.Text(reply))
}

func (h *Handler) handleLogin(ctx context.Context, sess server.Session, req *protocol.Request) {
	username, ok := req.Data.String("username")
	if !ok {
		_ = sess.Send(protocol.Missing("username"))
		return
	}
	accountType, ok := req.Data.String("type")
	if !ok {
		_ = sess.Send(protocol.Missing("type"))
		return
	}
	password, ok := req.Data.String("password")
	if !ok {
		_ = sess.Send(protocol.Missing("password"))
		return
	}

	reply, err := h.svc.Login(ctx, username, accountType, password)
	if err != nil {
		h.log.Error().Err(err).Str("username", username).Msg("login failed")
		_ = sess.Send(protocol.Text("storageError"))
		return
	}
	_ = sess.Send(protocol.Text(reply))
}

package chat

import (
	"context"

	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/server"
)

// Handler wires the chat commands onto the hub.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Register(r *server.Registry) {
	r.Handle("joinChat", h.handleJoin)
	r.Handle("exitChat", h.handleExit)
	r.Handle("chat", h.handleChat)
}

func (h *Handler) handleJoin(_ context.Context, sess server.Session, _ *protocol.Request) {
	h.hub.Join(sess)
	_ = sess.Send(protocol.Text("successful"))
}

func (h *Handler) handleExit(_ context.Context, sess server.Session, _ *protocol.Request) {
	h.hub.Leave(sess.ID())
	_ = sess.Send(protocol.Text("successful"))
}

// handleChat broadcasts to the joined set. The sender receives the message
// only if joined; there is no separate acknowledgement.
func (h *Handler) handleChat(_ context.Context, sess server.Session, req *protocol.Request) {
	username, ok := req.Data.String("username")
	if !ok {
		_ = sess.Send(protocol.Missing("username"))
		return
	}
	message, ok := req.Data.String("message")
	if !ok {
		_ = sess.Send(protocol.Missing("message"))
		return
	}

	h.hub.Broadcast(protocol.WithData("successful", map[string]any{
		"message": "[" + username + "] " + message,
	}))
}

package server

import (
	"context"

	"github.com/clinicd/clinicd/internal/protocol"
)

// Session is the per-connection handle passed to command handlers. Send is
// safe for concurrent use; the chat broadcaster sends to sessions from
// other connections' goroutines.
type Session interface {
	ID() string
	RemoteAddr() string
	Send(msg protocol.Message) error
}

// HandlerFunc processes one command. Replies go through the session; a
// handler may send zero (chat fan-out) or one reply.
type HandlerFunc func(ctx context.Context, sess Session, req *protocol.Request)

// Registry maps command names to handlers. Registration happens at startup
// before the listener accepts, so lookups need no locking.
type Registry struct {
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Handle registers fn for the given command name, replacing any previous
// registration.
func (r *Registry) Handle(command string, fn HandlerFunc) {
	r.handlers[command] = fn
}

// Dispatch routes a request to its handler. An unrecognized command gets an
// explicit unknownCommand reply; the legacy server answered with silence,
// which left clients hanging.
func (r *Registry) Dispatch(ctx context.Context, sess Session, req *protocol.Request) {
	fn, ok := r.handlers[req.Command]
	if !ok {
		_ = sess.Send(protocol.Text("unknownCommand"))
		return
	}
	fn(ctx, sess, req)
}

// Commands returns the registered command names, for the ops surface.
func (r *Registry) Commands() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}

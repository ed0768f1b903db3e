package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config carries the listener settings.
type Config struct {
	Addr string

	// ReadTimeout bounds the wait for the next inbound message; zero means
	// wait forever (chat clients sit idle between broadcasts).
	ReadTimeout time.Duration

	// WriteTimeout bounds each outbound write.
	WriteTimeout time.Duration

	// MaxMessageBytes caps a single wire message.
	MaxMessageBytes int
}

// Server accepts connections and runs one session goroutine per client.
type Server struct {
	cfg Config
	reg *Registry
	log zerolog.Logger

	mu           sync.Mutex
	sessions     map[string]*session
	onDisconnect []func(Session)

	listener net.Listener
}

func New(cfg Config, reg *Registry, log zerolog.Logger) *Server {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = 1 << 16
	}
	return &Server{
		cfg:      cfg,
		reg:      reg,
		log:      log.With().Str("component", "server").Logger(),
		sessions: make(map[string]*session),
	}
}

// OnDisconnect registers a hook invoked whenever a session ends, however it
// ends. The chat broadcaster uses this to drop the connection from the
// joined set unconditionally.
func (s *Server) OnDisconnect(fn func(Session)) {
	s.onDisconnect = append(s.onDisconnect, fn)
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe blocks accepting connections until ctx is cancelled, then
// closes the listener and every open session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")

	go func() {
		<-ctx.Done()
		_ = ln.Close()
		s.closeAll()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}
		sess := newSession(conn, s)
		s.addSession(sess)
		go sess.run(ctx)
	}
}

func (s *Server) addSession(sess *session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

// dropSession removes the session from the table and fires the disconnect
// hooks exactly once.
func (s *Server) dropSession(sess *session) {
	s.mu.Lock()
	_, open := s.sessions[sess.id]
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	if !open {
		return
	}
	for _, fn := range s.onDisconnect {
		fn(sess)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	open := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()
	for _, sess := range open {
		_ = sess.conn.Close()
	}
}

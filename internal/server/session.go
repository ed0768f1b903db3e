package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
)

// session owns one accepted connection. It reads newline-delimited JSON
// messages, dispatches them, and writes replies until the client
// disconnects or the server shuts down.
type session struct {
	id   string
	conn net.Conn
	srv  *Server
	log  zerolog.Logger

	writeMu sync.Mutex
}

func newSession(conn net.Conn, srv *Server) *session {
	id := uuid.New().String()
	return &session{
		id:   id,
		conn: conn,
		srv:  srv,
		log:  srv.log.With().Str("session", id).Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

func (s *session) ID() string { return s.id }

func (s *session) RemoteAddr() string { return s.conn.RemoteAddr().String() }

// Send marshals the message and writes it as one line. A write deadline
// bounds slow clients; writes are serialized so broadcasts from other
// goroutines cannot interleave with replies.
func (s *session) Send(msg protocol.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.srv.cfg.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.srv.cfg.WriteTimeout))
	}
	_, err = s.conn.Write(payload)
	return err
}

// run is the connection loop. Parse failures reply jsonError and keep the
// loop alive; only a transport-level read failure ends it. The disconnect
// hooks (chat exit among them) always fire on the way out.
func (s *session) run(ctx context.Context) {
	defer func() {
		s.srv.dropSession(s)
		_ = s.conn.Close()
		s.log.Info().Msg("client disconnected")
	}()

	s.log.Info().Msg("client connected")
	if err := s.Send(protocol.Text("successful_connection")); err != nil {
		return
	}

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 4096), s.srv.cfg.MaxMessageBytes)

	for {
		if ctx.Err() != nil {
			return
		}
		if s.srv.cfg.ReadTimeout > 0 {
			_ = s.conn.SetReadDeadline(time.Now().Add(s.srv.cfg.ReadTimeout))
		}
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.log.Debug().Str("message", line).Msg("received")

		req, reply := decodeRequest(line)
		if reply != nil {
			_ = s.Send(reply)
			continue
		}
		s.srv.reg.Dispatch(ctx, s, req)
	}
}

// decodeRequest parses one line into a request. The second return value is
// the error reply to send instead of dispatching, if any.
func decodeRequest(line string) (*protocol.Request, protocol.Message) {
	var envelope map[string]any
	if err := json.Unmarshal([]byte(line), &envelope); err != nil {
		return nil, protocol.Text("jsonError")
	}

	cmdVal, ok := envelope["command"]
	if !ok {
		return nil, protocol.Missing("command")
	}
	command, ok := cmdVal.(string)
	if !ok {
		return nil, protocol.Missing("command")
	}

	dataVal, ok := envelope["data"]
	if !ok {
		return nil, protocol.Missing("data")
	}
	// A scalar where the data object should be is treated as an empty
	// object; field validation then reports the first missing field.
	data, _ := dataVal.(map[string]any)

	return &protocol.Request{
		Command:  command,
		Data:     protocol.Body(data),
		Envelope: envelope,
	}, nil
}

// Package session drives the request/response pipeline for one
// authentication protocol connection.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/rayauth/rayauth/pkg/authmsg"
	"github.com/rayauth/rayauth/pkg/authwire"
)

// Handler is where authentication policy lives. It receives one decoded
// request and returns the one message to send back. Returning a message of
// type authmsg.TypeEmpty (or nil) sends nothing for that request. Returning
// an error terminates the session.
type Handler interface {
	Handle(ctx context.Context, req *authmsg.Message) (*authmsg.Message, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *authmsg.Message) (*authmsg.Message, error)

// Handle calls f(ctx, req).
func (f HandlerFunc) Handle(ctx context.Context, req *authmsg.Message) (*authmsg.Message, error) {
	return f(ctx, req)
}

// Session binds the frame codec to one duplex connection and a Handler,
// enforcing a strict pipeline: each decoded request is handled and its one
// response (possibly empty) written before the next request is decoded.
// Requests are never reordered relative to their responses.
type Session struct {
	conn     net.Conn
	dec      *authwire.Decoder
	enc      *authwire.Encoder
	handler  Handler
	log      *slog.Logger
	readSize int
}

// New creates a Session for conn. The session takes ownership of the
// connection and closes it when Run returns.
func New(conn net.Conn, handler Handler, opts ...Option) *Session {
	cfg := &config{
		log:      slog.Default(),
		maxLine:  0, // authwire default
		readSize: defaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var decOpts []authwire.Option
	if cfg.maxLine > 0 {
		decOpts = append(decOpts, authwire.MaxLineLength(cfg.maxLine))
	}

	return &Session{
		conn:     conn,
		dec:      authwire.NewDecoder(decOpts...),
		enc:      authwire.NewEncoder(conn),
		handler:  handler,
		log:      cfg.log.With("remote", conn.RemoteAddr()),
		readSize: cfg.readSize,
	}
}

// Run reads frames until the peer disconnects, the context is cancelled, or
// a fatal error occurs. It returns nil on clean disconnect or cancellation;
// any other return means this connection died on a decode, handler, or
// transport error. The connection is closed in every case. Other connections
// are unaffected.
func (s *Session) Run(ctx context.Context) error {
	defer s.conn.Close()

	// Cancelling the context unblocks the pending Read by closing the conn.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.Close()
	})
	defer stop()

	buf := make([]byte, s.readSize)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			_, _ = s.dec.Write(buf[:n])
			if err := s.drain(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				s.log.Debug("session closed")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
	}
}

// drain decodes every complete frame in the buffer, handling each in order.
func (s *Session) drain(ctx context.Context) error {
	for {
		req, err := s.dec.Decode()
		if err != nil {
			s.log.Warn("dropping connection on malformed frame", "error", err)
			return fmt.Errorf("decode: %w", err)
		}
		if req == nil {
			return nil // incomplete frame, wait for more bytes
		}

		resp, err := s.handler.Handle(ctx, req)
		if err != nil {
			s.log.Warn("dropping connection on handler error", "error", err)
			return fmt.Errorf("handle %s: %w", req.Type, err)
		}
		if resp == nil {
			resp = authmsg.New(authmsg.TypeEmpty)
		}

		if err := s.enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// Package authserver accepts authentication protocol connections and runs
// one pipelined session per connection.
package authserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rayauth/rayauth/pkg/session"
)

// Server owns the TCP listener. Each accepted connection gets its own
// session goroutine; sessions share nothing but the handler, so there is no
// locking in the protocol path.
type Server struct {
	log     *slog.Logger
	addr    string
	handler session.Handler
	maxLine int

	listener net.Listener
	wg       sync.WaitGroup

	active atomic.Int64
	total  atomic.Uint64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxLineLength bounds frame length on every session, see
// authwire.MaxLineLength.
func WithMaxLineLength(n int) Option {
	return func(s *Server) {
		s.maxLine = n
	}
}

// New creates a Server. This does not bind the listener - call Serve to
// begin accepting connections.
func New(log *slog.Logger, addr string, handler session.Handler, opts ...Option) *Server {
	s := &Server{
		log:     log,
		addr:    addr,
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve binds the listener and blocks until the context is cancelled.
// Returns an error if the listener cannot be started, otherwise returns
// ctx.Err() after every session has finished.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.log.Info("listening", "address", listener.Addr())

	go s.acceptLoop(ctx)

	<-ctx.Done()
	_ = listener.Close()
	s.wg.Wait()

	return ctx.Err()
}

// Addr returns the bound listener address, or nil before Serve. Useful when
// listening on ":0".
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ActiveSessions returns the number of connections currently being served.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

// TotalSessions returns the number of connections accepted since start.
func (s *Server) TotalSessions() uint64 {
	return s.total.Load()
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			s.log.Warn("accept failed", "error", err)
			continue
		}

		s.total.Add(1)
		s.active.Add(1)
		s.wg.Add(1)

		sess := session.New(conn, s.handler, s.sessionOptions()...)
		go func() {
			defer s.wg.Done()
			defer s.active.Add(-1)
			if err := sess.Run(ctx); err != nil {
				s.log.Warn("session ended with error", "remote", conn.RemoteAddr(), "error", err)
			}
		}()
	}
}

func (s *Server) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(s.log)}
	if s.maxLine > 0 {
		opts = append(opts, session.WithMaxLineLength(s.maxLine))
	}
	return opts
}

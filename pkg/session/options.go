package session

import "log/slog"

const defaultReadBufferSize = 4 * 1024

// config holds session configuration.
type config struct {
	log      *slog.Logger
	maxLine  int
	readSize int
}

// Option configures a Session.
type Option func(*config)

// WithLogger sets the logger for session lifecycle events.
// Default: slog.Default()
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithMaxLineLength bounds the length of a single frame, see
// authwire.MaxLineLength. Zero keeps the authwire default.
func WithMaxLineLength(n int) Option {
	return func(c *config) {
		c.maxLine = n
	}
}

// WithReadBufferSize sets the size of the transport read buffer.
// Default: 4KiB
func WithReadBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.readSize = n
		}
	}
}

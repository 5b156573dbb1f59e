package authwire

const (
	// Default maximum frame length (8KiB)
	defaultMaxLineLength = 8 * 1024
)

// config holds decoder configuration.
type config struct {
	maxLine int
}

// Option configures a Decoder.
type Option func(*config)

// MaxLineLength sets the maximum allowed frame length in bytes, including
// the terminating newline. When the buffer grows past this limit without a
// newline appearing, Decode returns ErrLineTooLong.
//
// This prevents memory exhaustion by a peer that streams bytes without ever
// terminating a frame.
//
// Default: 8KiB (8192 bytes)
func MaxLineLength(n int) Option {
	return func(c *config) {
		c.maxLine = n
	}
}

package authwire

import "io"

// Decoder splits an incoming byte stream into frames and decodes them.
//
// The decoder owns its input buffer: feed it transport bytes with Write,
// then call Decode until it reports an incomplete frame. It is not safe for
// concurrent use; each connection gets its own Decoder.
type Decoder struct {
	buf     []byte
	maxLine int
	offset  int // bytes consumed from the stream, for error reporting
}

// NewDecoder creates a frame decoder.
//
// Optional configuration can be provided via Option functions:
//
//	dec := authwire.NewDecoder(authwire.MaxLineLength(64 * 1024))
func NewDecoder(opts ...Option) *Decoder {
	cfg := &config{
		maxLine: defaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Decoder{
		maxLine: cfg.maxLine,
	}
}

// Write appends transport bytes to the decoder's input buffer. It never
// fails; it exists so the decoder satisfies io.Writer and can be the target
// of an io.CopyN or similar.
func (d *Decoder) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// Buffered returns the number of bytes waiting in the input buffer.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Encoder writes frames to an io.Writer.
//
// Writes are unbuffered; each Encode is one Write on the underlying stream.
// Wrap w in a bufio.Writer if coalescing is desired.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a frame encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

package authwire

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rayauth/rayauth/pkg/authmsg"
)

// Decode extracts the next complete frame from the input buffer and decodes
// it into a message.
//
// Returns (nil, nil) when no complete line is buffered; the buffer is left
// intact and the caller should Write more bytes before retrying. Returns
// exactly one message per buffered line otherwise, so callers drain the
// decoder by looping until it reports incomplete.
//
// A malformed line returns an error wrapping ErrInvalidFormat and leaves the
// buffer positioned at the bad line; the decoder makes no attempt to
// resynchronize. An over-long line without a newline returns an error
// wrapping ErrLineTooLong.
func (d *Decoder) Decode() (*authmsg.Message, error) {
	i := bytes.IndexByte(d.buf, '\n')
	if i < 0 {
		if len(d.buf) >= d.maxLine {
			return nil, fmt.Errorf("%w (%d buffered, max %d)", ErrLineTooLong, len(d.buf), d.maxLine)
		}
		return nil, nil
	}
	if i >= d.maxLine {
		return nil, fmt.Errorf("%w (%d bytes, max %d)", ErrLineTooLong, i+1, d.maxLine)
	}

	line := d.buf[:i]
	msg, err := d.decodeLine(line)
	if err != nil {
		return nil, err
	}

	// Consume the line and its delimiter only after it decoded cleanly.
	d.buf = d.buf[i+1:]
	d.offset += i + 1
	return msg, nil
}

// decodeLine decodes one delimiter-stripped line.
func (d *Decoder) decodeLine(line []byte) (*authmsg.Message, error) {
	if !utf8.Valid(line) {
		return nil, &FormatError{Offset: d.offset, Reason: "frame is not valid UTF-8"}
	}

	tokens := strings.Fields(string(line))
	if len(tokens) == 0 {
		return nil, &FormatError{Offset: d.offset, Reason: "missing message type"}
	}

	msg := authmsg.New(authmsg.ParseType(tokens[0]))

	for _, token := range tokens[1:] {
		key, value, ok := strings.Cut(token, "=")
		if !ok || strings.Contains(value, "=") {
			return nil, &FormatError{
				Offset: d.offset,
				Reason: fmt.Sprintf("bad key/value pair %q", token),
			}
		}
		if err := msg.SetField(key, value); err != nil {
			var fieldErr *authmsg.FieldError
			if errors.As(err, &fieldErr) {
				return nil, &FormatError{
					Offset: d.offset,
					Reason: fmt.Sprintf("field %s=%q: %s", fieldErr.Key, fieldErr.Value, fieldErr.Reason),
				}
			}
			return nil, &FormatError{Offset: d.offset, Reason: err.Error()}
		}
	}

	return msg, nil
}

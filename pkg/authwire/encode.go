package authwire

import (
	"fmt"

	"github.com/rayauth/rayauth/pkg/authmsg"
)

// Encode writes one frame for the message.
//
// A message of type authmsg.TypeEmpty writes nothing and returns nil; it is
// the no-response marker. Any other message is written as its type tag
// followed by the response fields that are set, access before tokenSeq,
// and a terminating newline:
//
//	connRsp access=granted tokenSeq=7\n
//
// Fields outside the response vocabulary are never emitted, even when set.
func (e *Encoder) Encode(m *authmsg.Message) error {
	if m.Type == authmsg.TypeEmpty {
		return nil
	}

	frame := []byte(m.Type.String())
	if m.Access != nil {
		frame = fmt.Appendf(frame, " access=%s", *m.Access)
	}
	if m.TokenSeq != nil {
		frame = fmt.Appendf(frame, " tokenSeq=%d", *m.TokenSeq)
	}
	frame = append(frame, '\n')

	_, err := e.w.Write(frame)
	return err
}

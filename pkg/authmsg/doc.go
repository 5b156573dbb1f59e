// Package authmsg defines the message model for the remote-display
// authentication protocol.
//
// A message is one line of text on the wire: a message-type tag followed by
// optional key=value fields separated by whitespace.
//
//	infoReq MTU=1500 barrierLevel=3 hw=SUNW.UltraAM
//	connRsp access=granted tokenSeq=7
//
// Every field is optional. An absent field is represented as unset (nil
// pointer, invalid address, nil slice), never as an empty string or zero.
//
// # Field Assignment
//
// SetField applies one key=value pair to a message using a fixed table of
// known field names. Keys are matched exactly and case-sensitively. Unknown
// keys are silently ignored so that newer clients can send fields an older
// server does not understand. A value that fails to parse as its declared
// type returns a *FieldError.
//
// # Response Vocabulary
//
// The protocol is intentionally asymmetric: requests carry the full field
// table, but responses only ever carry access and tokenSeq. The narrowing is
// enforced by the wire encoder, not by this package; any field may be set on
// a Message.
package authmsg

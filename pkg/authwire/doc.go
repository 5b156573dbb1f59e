// Package authwire implements framing for the remote-display authentication
// protocol.
//
// A frame is one newline-terminated line of UTF-8 text holding exactly one
// message: a type tag followed by optional key=value fields.
//
//	infoReq MTU=1500 barrierLevel=3 hw=SUNW.UltraAM\n
//
// # Decoding
//
// The Decoder accumulates transport bytes and yields one message per
// complete line:
//
//	dec := authwire.NewDecoder()
//	dec.Write(chunk) // as bytes arrive from the connection
//	for {
//		msg, err := dec.Decode()
//		if err != nil { ... } // fatal for the connection
//		if msg == nil {
//			break // incomplete frame, wait for more bytes
//		}
//		handle(msg)
//	}
//
// Decode returning (nil, nil) means a full line is not buffered yet; it
// consumes nothing, so the call is idempotent until more bytes arrive.
// Decode errors are fatal: the decoder does not resynchronize mid-stream,
// the caller is expected to drop the connection.
//
// # Encoding
//
// The Encoder writes one frame per message. A message of type
// authmsg.TypeEmpty writes nothing; it is the "no response" marker that
// still advances the request/response pipeline. All other messages are
// written as the type tag plus the response fields access and tokenSeq, in
// that order, when set. No other field is ever emitted: the protocol's
// response vocabulary is deliberately narrower than its request vocabulary.
//
// # Security
//
// The MaxLineLength option (default 8KiB) bounds the bytes buffered while
// waiting for a newline, so a peer that never sends one cannot exhaust
// memory.
package authwire

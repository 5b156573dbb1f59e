package authmsg

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// FieldError reports a field value that failed to parse as its declared type.
type FieldError struct {
	Key    string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("authmsg: field %s=%q: %s", e.Key, e.Value, e.Reason)
}

// fieldTable maps wire keys to assignment operations. Adding a field is a
// table entry, not a new branch in the parser.
var fieldTable = map[string]func(*Message, string) error{
	"MTU":          func(m *Message, v string) error { return setUint32(&m.MTU, "MTU", v) },
	"barrierLevel": func(m *Message, v string) error { return setUint64(&m.BarrierLevel, "barrierLevel", v) },
	"cause":        func(m *Message, v string) error { m.Cause = &v; return nil },
	"clientRand":   func(m *Message, v string) error { m.ClientRand = &v; return nil },
	"ddcconfig":    func(m *Message, v string) error { return setUint32(&m.DDCConfig, "ddcconfig", v) },
	"event":        func(m *Message, v string) error { m.Event = &v; return nil },
	"firstServer":  func(m *Message, v string) error { return setHexAddr(&m.FirstServer, "firstServer", v) },
	"fw":           func(m *Message, v string) error { m.FW = &v; return nil },
	"hw":           func(m *Message, v string) error { m.HW = &v; return nil },
	"id":           func(m *Message, v string) error { m.ID = &v; return nil },
	"initState":    func(m *Message, v string) error { return setUint32(&m.InitState, "initState", v) },
	"keyTypes":     func(m *Message, v string) error { m.KeyTypes = strings.Split(v, ","); return nil },
	"namespace":    func(m *Message, v string) error { m.Namespace = &v; return nil },
	"pn":           func(m *Message, v string) error { return setUint32(&m.PN, "pn", v) },
	"realIP":       func(m *Message, v string) error { return setHexAddr(&m.RealIP, "realIP", v) },
	"sn":           func(m *Message, v string) error { m.SN = &v; return nil },
	"state":        func(m *Message, v string) error { m.State = &v; return nil },
	"tokenSeq":     func(m *Message, v string) error { return setUint32(&m.TokenSeq, "tokenSeq", v) },
	"type":         func(m *Message, v string) error { m.Terminal = &v; return nil },
	"access":       func(m *Message, v string) error { m.Access = &v; return nil },
}

// SetField applies one key=value assignment to the message.
//
// Keys are matched exactly and case-sensitively against the protocol's field
// table. Unknown keys are ignored without error. Re-assigning a key
// overwrites the previous value, so applying tokens in wire order gives
// last-write-wins semantics for duplicate keys.
//
// Integer fields parse as base 10. firstServer and realIP parse as 8 hex
// digits holding an IPv4 address in network byte order. A value that fails to
// parse returns a *FieldError.
func (m *Message) SetField(key, value string) error {
	assign, ok := fieldTable[key]
	if !ok {
		return nil
	}
	return assign(m, value)
}

func setUint32(dst **uint32, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return &FieldError{Key: key, Value: value, Reason: "not a 32-bit unsigned integer"}
	}
	v := uint32(n)
	*dst = &v
	return nil
}

func setUint64(dst **uint64, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return &FieldError{Key: key, Value: value, Reason: "not a 64-bit unsigned integer"}
	}
	*dst = &n
	return nil
}

// setHexAddr parses an IPv4 address encoded as up to 8 hex digits,
// big-endian byte order, e.g. "0A000001" is 10.0.0.1.
func setHexAddr(dst **netip.Addr, key, value string) error {
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return &FieldError{Key: key, Value: value, Reason: "not a hex-encoded IPv4 address"}
	}
	addr := netip.AddrFrom4([4]byte{
		byte(n >> 24),
		byte(n >> 16),
		byte(n >> 8),
		byte(n),
	})
	*dst = &addr
	return nil
}

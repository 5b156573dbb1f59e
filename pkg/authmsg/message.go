package authmsg

import (
	"fmt"
	"net/netip"
	"strings"
)

// Type identifies the kind of protocol message. It is always the first
// whitespace-delimited token on a wire line.
type Type int

// The closed set of wire tags. TypeEmpty is the zero value: a sentinel
// meaning "no message to send", used by handlers to suppress a response.
// TypeUnknown is the fallback for any tag not in the table.
const (
	TypeEmpty Type = iota
	TypeInfoReq
	TypeKeepAliveReq
	TypeKeepAliveCnf
	TypeDiscInf
	TypeDiscRsp
	TypeConnInf
	TypeConnRsp
	TypeUnknown
)

var typeNames = map[Type]string{
	TypeEmpty:        "empty",
	TypeInfoReq:      "infoReq",
	TypeKeepAliveReq: "keepAliveReq",
	TypeKeepAliveCnf: "keepAliveCnf",
	TypeDiscInf:      "discInf",
	TypeDiscRsp:      "discRsp",
	TypeConnInf:      "connInf",
	TypeConnRsp:      "connRsp",
}

var typesByName = map[string]Type{
	"infoReq":      TypeInfoReq,
	"keepAliveReq": TypeKeepAliveReq,
	"keepAliveCnf": TypeKeepAliveCnf,
	"discInf":      TypeDiscInf,
	"discRsp":      TypeDiscRsp,
	"connInf":      TypeConnInf,
	"connRsp":      TypeConnRsp,
}

// String returns the wire form of the tag.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType maps a wire tag to its Type. Unrecognized tags map to
// TypeUnknown; this is never an error.
func ParseType(s string) Type {
	if t, ok := typesByName[s]; ok {
		return t
	}
	return TypeUnknown
}

// Message is one protocol message: a Type plus optional named fields.
// Unset fields are nil (or an invalid netip.Addr). A Message lives for a
// single request/response cycle and carries no shared state.
type Message struct {
	Type Type

	MTU          *uint32
	BarrierLevel *uint64
	Cause        *string
	ClientRand   *string
	DDCConfig    *uint32
	Event        *string
	FirstServer  *netip.Addr
	FW           *string
	HW           *string
	ID           *string
	InitState    *uint32
	KeyTypes     []string
	Namespace    *string
	PN           *uint32
	RealIP       *netip.Addr
	SN           *string
	State        *string
	TokenSeq     *uint32
	Terminal     *string // wire key "type"
	Access       *string
}

// New returns a Message of the given type with all fields unset.
func New(t Type) *Message {
	return &Message{Type: t}
}

// String renders the type tag and every set field on one line, in field-table
// order. It is a diagnostic form, not the wire form; use authwire.Encoder for
// the wire.
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString(m.Type.String())

	appendStr := func(key string, v *string) {
		if v != nil {
			fmt.Fprintf(&b, " %s=%s", key, *v)
		}
	}

	if m.MTU != nil {
		fmt.Fprintf(&b, " MTU=%d", *m.MTU)
	}
	if m.BarrierLevel != nil {
		fmt.Fprintf(&b, " barrierLevel=%d", *m.BarrierLevel)
	}
	appendStr("cause", m.Cause)
	appendStr("clientRand", m.ClientRand)
	if m.DDCConfig != nil {
		fmt.Fprintf(&b, " ddcconfig=%d", *m.DDCConfig)
	}
	appendStr("event", m.Event)
	if m.FirstServer != nil {
		fmt.Fprintf(&b, " firstServer=%s", *m.FirstServer)
	}
	appendStr("fw", m.FW)
	appendStr("hw", m.HW)
	appendStr("id", m.ID)
	if m.InitState != nil {
		fmt.Fprintf(&b, " initState=%d", *m.InitState)
	}
	if m.KeyTypes != nil {
		fmt.Fprintf(&b, " keyTypes=%s", strings.Join(m.KeyTypes, ","))
	}
	appendStr("namespace", m.Namespace)
	if m.PN != nil {
		fmt.Fprintf(&b, " pn=%d", *m.PN)
	}
	if m.RealIP != nil {
		fmt.Fprintf(&b, " realIP=%s", *m.RealIP)
	}
	appendStr("sn", m.SN)
	appendStr("state", m.State)
	if m.TokenSeq != nil {
		fmt.Fprintf(&b, " tokenSeq=%d", *m.TokenSeq)
	}
	appendStr("type", m.Terminal)
	appendStr("access", m.Access)

	return b.String()
}

// String returns a pointer to s, for setting optional fields.
func String(s string) *string { return &s }

// Uint32 returns a pointer to v, for setting optional fields.
func Uint32(v uint32) *uint32 { return &v }

// Uint64 returns a pointer to v, for setting optional fields.
func Uint64(v uint64) *uint64 { return &v }

// Addr returns a pointer to a, for setting optional fields.
func Addr(a netip.Addr) *netip.Addr { return &a }

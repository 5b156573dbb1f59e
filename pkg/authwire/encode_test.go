package authwire

import (
	"bytes"
	"testing"

	"github.com/rayauth/rayauth/pkg/authmsg"
)

func TestEncoder_Encode_Empty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Encode(authmsg.New(authmsg.TypeEmpty)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty message wrote %d bytes: %q", buf.Len(), buf.String())
	}
}

func TestEncoder_Encode_BareType(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Encode(authmsg.New(authmsg.TypeKeepAliveCnf)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "keepAliveCnf\n" {
		t.Errorf("got %q, want %q", buf.String(), "keepAliveCnf\n")
	}
}

func TestEncoder_Encode_ResponseFields(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	msg := authmsg.New(authmsg.TypeConnRsp)
	msg.Access = authmsg.String("granted")
	msg.TokenSeq = authmsg.Uint32(7)

	if err := enc.Encode(msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "connRsp access=granted tokenSeq=7\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestEncoder_Encode_AccessOnly(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	msg := authmsg.New(authmsg.TypeDiscRsp)
	msg.Access = authmsg.String("denied")

	if err := enc.Encode(msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "discRsp access=denied\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestEncoder_Encode_NarrowsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	// Only access and tokenSeq make it to the wire, whatever else is set.
	msg := authmsg.New(authmsg.TypeConnRsp)
	msg.MTU = authmsg.Uint32(1500)
	msg.HW = authmsg.String("SUNW.UltraAM")
	msg.KeyTypes = []string{"rsa"}
	msg.TokenSeq = authmsg.Uint32(3)

	if err := enc.Encode(msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "connRsp tokenSeq=3\n" {
		t.Errorf("got %q, want %q", buf.String(), "connRsp tokenSeq=3\n")
	}
}

func TestEncoder_Encode_Unknown(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Encode(authmsg.New(authmsg.TypeUnknown)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "unknown\n" {
		t.Errorf("got %q, want %q", buf.String(), "unknown\n")
	}
}

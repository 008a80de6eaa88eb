package protocol_test

import (
	"testing"

	"github.com/brackenfield/mcclient/protocol"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state protocol.State
		want  string
	}{
		{protocol.Handshaking, "handshaking"},
		{protocol.Status, "status"},
		{protocol.Login, "login"},
		{protocol.Configuration, "configuration"},
		{protocol.Play, "play"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestLookupKnownPacket(t *testing.T) {
	desc, ok := protocol.Lookup(protocol.Play, protocol.Serverbound, 0x00)
	if !ok {
		t.Fatal("expected ConfirmTeleportation (play/serverbound/0x00) to be registered")
	}
	if desc.Name != "ConfirmTeleportation" {
		t.Errorf("Name = %q, want ConfirmTeleportation", desc.Name)
	}
	pkt := desc.NewFunc()
	if pkt.State() != protocol.Play || pkt.Bound() != protocol.Serverbound {
		t.Errorf("NewFunc() produced a packet with State=%v Bound=%v", pkt.State(), pkt.Bound())
	}
}

func TestLookupUnregisteredIDMisses(t *testing.T) {
	if _, ok := protocol.Lookup(protocol.Play, protocol.Clientbound, 0xFE); ok {
		t.Error("expected an unregistered id to miss rather than panic or match")
	}
}

func TestLookupIsKeyedByAllThreeDimensions(t *testing.T) {
	// ConfirmTeleportation is serverbound/play/0x00; the same id in the
	// clientbound direction must not resolve to it.
	_, okWrongBound := protocol.Lookup(protocol.Play, protocol.Clientbound, 0x00)
	_, okWrongState := protocol.Lookup(protocol.Configuration, protocol.Serverbound, 0x00)
	if okWrongBound {
		t.Error("expected clientbound/play/0x00 to be a different entry (or absent)")
	}
	_ = okWrongState // Configuration/Serverbound/0x00 may legitimately exist as a different packet
}

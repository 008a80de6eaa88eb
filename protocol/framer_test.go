package protocol_test

import (
	"bytes"
	"testing"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
)

func drain(t *testing.T, f *protocol.Framer) []*protocol.DataPacket {
	t.Helper()
	var out []*protocol.DataPacket
	for {
		pkt, err := f.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pkt == nil {
			return out
		}
		out = append(out, pkt)
	}
}

func TestFramer_UncompressedRoundTrip(t *testing.T) {
	f := protocol.NewFramer()
	wire, err := f.Encode(ns.VarInt(0x10), []byte("hello"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	f.Feed(wire)
	pkts := drain(t, f)
	if len(pkts) != 1 {
		t.Fatalf("expected 1 packet, got %d", len(pkts))
	}
	if pkts[0].ID != 0x10 || !bytes.Equal(pkts[0].Data, []byte("hello")) {
		t.Fatalf("unexpected packet: %+v", pkts[0])
	}
}

func TestFramer_RestartSafeByteAtATime(t *testing.T) {
	f := protocol.NewFramer()
	wire, err := f.Encode(ns.VarInt(0x01), []byte("partial-feed-test"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var got []*protocol.DataPacket
	for _, b := range wire {
		f.Feed([]byte{b})
		got = append(got, drain(t, f)...)
	}

	if len(got) != 1 {
		t.Fatalf("expected exactly 1 packet after feeding byte-at-a-time, got %d", len(got))
	}
	if got[0].ID != 0x01 || string(got[0].Data) != "partial-feed-test" {
		t.Fatalf("unexpected packet: %+v", got[0])
	}
}

func TestFramer_MultiplePacketsInOneFeed(t *testing.T) {
	f := protocol.NewFramer()
	wire1, _ := f.Encode(ns.VarInt(0x01), []byte("first"))
	wire2, _ := f.Encode(ns.VarInt(0x02), []byte("second"))

	f.Feed(append(append([]byte{}, wire1...), wire2...))
	pkts := drain(t, f)
	if len(pkts) != 2 {
		t.Fatalf("expected 2 packets, got %d", len(pkts))
	}
	if pkts[0].ID != 0x01 || pkts[1].ID != 0x02 {
		t.Fatalf("packets out of order: %+v", pkts)
	}
}

func TestFramer_CompressionBelowThreshold(t *testing.T) {
	f := protocol.NewFramer()
	f.SetCompressionThreshold(256)

	wire, err := f.Encode(ns.VarInt(0x05), []byte("tiny"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	f.Feed(wire)
	pkts := drain(t, f)
	if len(pkts) != 1 || pkts[0].ID != 0x05 || string(pkts[0].Data) != "tiny" {
		t.Fatalf("unexpected result: %+v", pkts)
	}
}

func TestFramer_CompressionAboveThreshold(t *testing.T) {
	f := protocol.NewFramer()
	f.SetCompressionThreshold(8)

	payload := bytes.Repeat([]byte("x"), 512)
	wire, err := f.Encode(ns.VarInt(0x05), payload)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	f2 := protocol.NewFramer()
	f2.SetCompressionThreshold(8)
	f2.Feed(wire)
	pkts := drain(t, f2)
	if len(pkts) != 1 || pkts[0].ID != 0x05 || !bytes.Equal(pkts[0].Data, payload) {
		t.Fatalf("unexpected result: id=%v len=%d", pkts[0].ID, len(pkts[0].Data))
	}
}

func TestFramer_SplitAcrossFeedsPreservesBoundary(t *testing.T) {
	f := protocol.NewFramer()
	wire1, _ := f.Encode(ns.VarInt(0x01), []byte("alpha"))
	wire2, _ := f.Encode(ns.VarInt(0x02), []byte("beta"))
	combined := append(append([]byte{}, wire1...), wire2...)

	split := len(wire1) + 2 // split partway into the second packet
	f.Feed(combined[:split])
	first := drain(t, f)
	if len(first) != 1 || first[0].ID != 0x01 {
		t.Fatalf("expected to decode only the first packet, got %+v", first)
	}

	f.Feed(combined[split:])
	second := drain(t, f)
	if len(second) != 1 || second[0].ID != 0x02 || string(second[0].Data) != "beta" {
		t.Fatalf("expected second packet after remaining bytes fed, got %+v", second)
	}
}

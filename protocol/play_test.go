package protocol_test

import (
	"testing"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
)

// encodeDecode round-trips pkt through its own Encode and a fresh decode
// target's Decode, for packet types that implement both directions.
func encodeDecode(t *testing.T, pkt, target protocol.Packet) {
	t.Helper()
	buf := ns.NewWriter()
	if err := pkt.Encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := target.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestConfirmTeleportationRoundTrip(t *testing.T) {
	got := &protocol.ConfirmTeleportation{}
	encodeDecode(t, &protocol.ConfirmTeleportation{TeleportID: 42}, got)
	if got.TeleportID != 42 {
		t.Errorf("TeleportID = %v, want 42", got.TeleportID)
	}
}

func TestChatMessageRoundTrip(t *testing.T) {
	got := &protocol.ChatMessage{}
	encodeDecode(t, &protocol.ChatMessage{Message: "hello world"}, got)
	if got.Message != "hello world" {
		t.Errorf("Message = %q, want %q", got.Message, "hello world")
	}
}

func TestChatCommandRoundTrip(t *testing.T) {
	got := &protocol.ChatCommand{}
	encodeDecode(t, &protocol.ChatCommand{Command: "gamemode creative"}, got)
	if got.Command != "gamemode creative" {
		t.Errorf("Command = %q, want %q", got.Command, "gamemode creative")
	}
}

func TestClientStatusRoundTrip(t *testing.T) {
	got := &protocol.ClientStatus{}
	encodeDecode(t, &protocol.ClientStatus{Action: protocol.RequestStats}, got)
	if got.Action != protocol.RequestStats {
		t.Errorf("Action = %v, want RequestStats", got.Action)
	}
}

func TestPingResponsePlayRoundTrip(t *testing.T) {
	got := &protocol.PingResponsePlay{}
	encodeDecode(t, &protocol.PingResponsePlay{ID_: -99}, got)
	if got.ID_ != -99 {
		t.Errorf("ID_ = %v, want -99", got.ID_)
	}
}

func TestServerboundKeepAlivePlayRoundTrip(t *testing.T) {
	got := &protocol.ServerboundKeepAlivePlay{}
	encodeDecode(t, &protocol.ServerboundKeepAlivePlay{ID_: 1234567890123}, got)
	if got.ID_ != 1234567890123 {
		t.Errorf("ID_ = %v, want 1234567890123", got.ID_)
	}
}

// PlayerPositionAndRotation's Decode is intentionally UnsupportedEncode (the
// server never sends it), so its round trip is verified through the raw
// primitive reader instead of the packet's own Decode.
func TestPlayerPositionAndRotationEncodesExpectedLayout(t *testing.T) {
	pkt := &protocol.PlayerPositionAndRotation{X: 1.5, Y: 64, Z: -2.25, Yaw: 90, Pitch: -45, OnGround: true}
	buf := ns.NewWriter()
	if err := pkt.Encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	r := ns.NewReader(buf.Bytes())
	x, _ := r.ReadFloat64()
	y, _ := r.ReadFloat64()
	z, _ := r.ReadFloat64()
	yaw, _ := r.ReadFloat32()
	pitch, _ := r.ReadFloat32()
	onGround, _ := r.ReadBool()

	if x != 1.5 || y != 64 || z != -2.25 || yaw != 90 || pitch != -45 || !bool(onGround) {
		t.Errorf("decoded (%v,%v,%v,%v,%v,%v), want (1.5,64,-2.25,90,-45,true)", x, y, z, yaw, pitch, onGround)
	}
}

func TestPlayerPositionAndRotationDecodeUnsupported(t *testing.T) {
	pkt := &protocol.PlayerPositionAndRotation{}
	if err := pkt.Decode(ns.NewReader(nil)); !protocol.IsKind(err, protocol.UnsupportedEncode) {
		t.Errorf("expected UnsupportedEncode, got %v", err)
	}
}

func TestChunkBatchReceivedEncodesFloat(t *testing.T) {
	pkt := &protocol.ChunkBatchReceived{ChunksPerTick: 10.0}
	buf := ns.NewWriter()
	if err := pkt.Encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ns.NewReader(buf.Bytes()).ReadFloat32()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got != 10.0 {
		t.Errorf("ChunksPerTick round trip = %v, want 10.0", got)
	}
}

func TestBlockUpdateDecode(t *testing.T) {
	buf := ns.NewWriter()
	buf.WritePosition(ns.Position{X: 100, Y: 64, Z: -200})
	buf.WriteVarInt(77)

	pkt := &protocol.BlockUpdate{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.Location.X != 100 || pkt.Location.Y != 64 || pkt.Location.Z != -200 {
		t.Errorf("Location = %+v, want {100 64 -200}", pkt.Location)
	}
	if pkt.BlockID != 77 {
		t.Errorf("BlockID = %v, want 77", pkt.BlockID)
	}
}

func TestBlockUpdateEncodeUnsupported(t *testing.T) {
	pkt := &protocol.BlockUpdate{}
	if err := pkt.Encode(ns.NewWriter()); !protocol.IsKind(err, protocol.UnsupportedEncode) {
		t.Errorf("expected UnsupportedEncode, got %v", err)
	}
}

func TestUnloadChunkDecodesZThenX(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteInt32(7)  // z
	buf.WriteInt32(-3) // x

	pkt := &protocol.UnloadChunk{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.ChunkZ != 7 || pkt.ChunkX != -3 {
		t.Errorf("ChunkZ/ChunkX = %v/%v, want 7/-3", pkt.ChunkZ, pkt.ChunkX)
	}
}

func TestSynchronizePlayerPositionDecodesFlagsBitmask(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteFloat64(1)
	buf.WriteFloat64(2)
	buf.WriteFloat64(3)
	buf.WriteFloat64(0)
	buf.WriteFloat64(0)
	buf.WriteFloat64(0)
	buf.WriteFloat32(45)
	buf.WriteFloat32(10)
	buf.WriteUint8(ns.Uint8(protocol.FlagRelativeX | protocol.FlagRelativePitch))
	buf.WriteVarInt(9)

	pkt := &protocol.SynchronizePlayerPosition{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.Flags&protocol.FlagRelativeX == 0 {
		t.Error("expected FlagRelativeX set")
	}
	if pkt.Flags&protocol.FlagRelativeY != 0 {
		t.Error("expected FlagRelativeY unset")
	}
	if pkt.Flags&protocol.FlagRelativePitch == 0 {
		t.Error("expected FlagRelativePitch set")
	}
	if pkt.TeleportID != 9 {
		t.Errorf("TeleportID = %v, want 9", pkt.TeleportID)
	}
}

func TestKeepAlivePlayDecode(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteInt64(555)

	pkt := &protocol.KeepAlivePlay{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.ID_ != 555 {
		t.Errorf("ID_ = %v, want 555", pkt.ID_)
	}
}

func TestSystemChatMessageDecode(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteTextComponent(ns.NewTextComponent("server says hi"))
	buf.WriteBool(true)

	pkt := &protocol.SystemChatMessage{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.Content.Text != "server says hi" {
		t.Errorf("Content.Text = %q, want %q", pkt.Content.Text, "server says hi")
	}
	if !bool(pkt.Overlay) {
		t.Error("expected Overlay = true")
	}
}

func TestSetEquipmentDecodesSentinelTerminatedList(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteVarInt(5) // entity id

	buf.WriteInt8(ns.Int8(-0x80)) // slot 0, more follows
	buf.WriteSlot(ns.Slot{})               // empty item

	buf.WriteInt8(ns.Int8(1)) // slot 1, last entry
	buf.WriteSlot(ns.Slot{})

	pkt := &protocol.SetEquipment{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkt.EntityID != 5 {
		t.Errorf("EntityID = %v, want 5", pkt.EntityID)
	}
	if len(pkt.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(pkt.Entries))
	}
	if pkt.Entries[0].Slot != 0 || pkt.Entries[1].Slot != 1 {
		t.Errorf("Entries slots = %v,%v, want 0,1", pkt.Entries[0].Slot, pkt.Entries[1].Slot)
	}
}

func TestRemoveEntitiesDecode(t *testing.T) {
	buf := ns.NewWriter()
	buf.WriteVarInt(3)
	buf.WriteVarInt(10)
	buf.WriteVarInt(20)
	buf.WriteVarInt(30)

	pkt := &protocol.RemoveEntities{}
	if err := pkt.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []ns.VarInt{10, 20, 30}
	if len(pkt.EntityIDs) != len(want) {
		t.Fatalf("len(EntityIDs) = %d, want %d", len(pkt.EntityIDs), len(want))
	}
	for i, id := range want {
		if pkt.EntityIDs[i] != id {
			t.Errorf("EntityIDs[%d] = %v, want %v", i, pkt.EntityIDs[i], id)
		}
	}
}

func TestChunkBatchStartFinishedDecode(t *testing.T) {
	start := &protocol.ChunkBatchStart{}
	if err := start.Decode(ns.NewReader(nil)); err != nil {
		t.Fatalf("ChunkBatchStart.Decode: %v", err)
	}

	buf := ns.NewWriter()
	buf.WriteVarInt(16)
	finished := &protocol.ChunkBatchFinished{}
	if err := finished.Decode(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("ChunkBatchFinished.Decode: %v", err)
	}
	if finished.BatchSize != 16 {
		t.Errorf("BatchSize = %v, want 16", finished.BatchSize)
	}
}

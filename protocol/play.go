package protocol

import ns "github.com/brackenfield/mcclient/net_structures"

// Packet ids below follow the teacher's own handshake/login numbering where
// it already declared a packet (KeepAlive, ChatMessage, TeleportConfirm,
// PingResponse, SystemChatMessage, Ping), and this module's own consistent
// assignment elsewhere in the Play id space for everything spec.md's
// "Required PLAY behaviors" names but the teacher never got around to
// declaring. Packets outside this registered set resolve through the
// UnknownPacketID path by design (spec.md §7) rather than needing an entry
// each — see DESIGN.md.

// ConfirmTeleportation is serverbound, 0x00 — sent in response to
// SynchronizePlayerPosition.
type ConfirmTeleportation struct {
	TeleportID ns.VarInt
}

func (p *ConfirmTeleportation) ID() ns.VarInt { return 0x00 }
func (p *ConfirmTeleportation) State() State  { return Play }
func (p *ConfirmTeleportation) Bound() Bound  { return Serverbound }

func (p *ConfirmTeleportation) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "confirm teleportation: id")
	}
	p.TeleportID = v
	return nil
}

func (p *ConfirmTeleportation) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.TeleportID)
}

// ChatMessage is serverbound, 0x03 — unsigned chat content only; the
// signing chain real vanilla clients attach is out of scope (Non-goal:
// no chat-signing/report infrastructure).
type ChatMessage struct {
	Message ns.String
}

func (p *ChatMessage) ID() ns.VarInt { return 0x03 }
func (p *ChatMessage) State() State  { return Play }
func (p *ChatMessage) Bound() Bound  { return Serverbound }

func (p *ChatMessage) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadString(256)
	if err != nil {
		return newError(Malformed, err, "chat message: content")
	}
	p.Message = v
	return nil
}

func (p *ChatMessage) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Message)
}

// ChatCommand is serverbound, 0x05 — an unsigned `/command` invocation.
type ChatCommand struct {
	Command ns.String
}

func (p *ChatCommand) ID() ns.VarInt { return 0x05 }
func (p *ChatCommand) State() State  { return Play }
func (p *ChatCommand) Bound() Bound  { return Serverbound }

func (p *ChatCommand) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadString(256)
	if err != nil {
		return newError(Malformed, err, "chat command: content")
	}
	p.Command = v
	return nil
}

func (p *ChatCommand) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Command)
}

// PlayerPositionAndRotation is serverbound, 0x1A — the client's own
// reported position and facing, sent on every tick the client moves or
// looks around.
type PlayerPositionAndRotation struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

func (p *PlayerPositionAndRotation) ID() ns.VarInt { return 0x1A }
func (p *PlayerPositionAndRotation) State() State  { return Play }
func (p *PlayerPositionAndRotation) Bound() Bound  { return Serverbound }

func (p *PlayerPositionAndRotation) Decode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "player position and rotation: server never sends this packet")
}

func (p *PlayerPositionAndRotation) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(ns.Float64(p.X)); err != nil {
		return err
	}
	if err := buf.WriteFloat64(ns.Float64(p.Y)); err != nil {
		return err
	}
	if err := buf.WriteFloat64(ns.Float64(p.Z)); err != nil {
		return err
	}
	if err := buf.WriteFloat32(ns.Float32(p.Yaw)); err != nil {
		return err
	}
	if err := buf.WriteFloat32(ns.Float32(p.Pitch)); err != nil {
		return err
	}
	return buf.WriteBool(ns.Boolean(p.OnGround))
}

// ClientStatus is serverbound, 0x04 — used here only for PerformRespawn
// (action 0), sent after CombatDeath.
type ClientStatusAction ns.VarInt

const (
	PerformRespawn ClientStatusAction = iota
	RequestStats
)

type ClientStatus struct {
	Action ClientStatusAction
}

func (p *ClientStatus) ID() ns.VarInt { return 0x04 }
func (p *ClientStatus) State() State  { return Play }
func (p *ClientStatus) Bound() Bound  { return Serverbound }

func (p *ClientStatus) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "client status: action")
	}
	p.Action = ClientStatusAction(v)
	return nil
}

func (p *ClientStatus) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(ns.VarInt(p.Action))
}

// PingResponsePlay is serverbound, 0x18 — echoes the id from a clientbound
// Ping (play).
type PingResponsePlay struct {
	ID_ ns.Int32
}

func (p *PingResponsePlay) ID() ns.VarInt { return 0x18 }
func (p *PingResponsePlay) State() State  { return Play }
func (p *PingResponsePlay) Bound() Bound  { return Serverbound }

func (p *PingResponsePlay) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt32()
	if err != nil {
		return newError(Malformed, err, "ping response: id")
	}
	p.ID_ = v
	return nil
}

func (p *PingResponsePlay) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteInt32(p.ID_)
}

// ServerboundKeepAlivePlay is serverbound, 0x1B — must echo the id from the
// clientbound KeepAlivePlay exactly.
type ServerboundKeepAlivePlay struct {
	ID_ ns.Int64
}

func (p *ServerboundKeepAlivePlay) ID() ns.VarInt { return 0x1B }
func (p *ServerboundKeepAlivePlay) State() State  { return Play }
func (p *ServerboundKeepAlivePlay) Bound() Bound  { return Serverbound }

func (p *ServerboundKeepAlivePlay) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt64()
	if err != nil {
		return newError(Malformed, err, "keep alive (play): id")
	}
	p.ID_ = v
	return nil
}

func (p *ServerboundKeepAlivePlay) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.ID_)
}

// SpawnEntity is clientbound, 0x01.
type SpawnEntity struct {
	EntityID   ns.VarInt
	EntityUUID ns.UUID
	Type       ns.VarInt
	X, Y, Z    ns.Float64
	Pitch, Yaw, HeadYaw ns.Angle
	Data       ns.VarInt
	VX, VY, VZ ns.Int16
}

func (p *SpawnEntity) ID() ns.VarInt { return 0x01 }
func (p *SpawnEntity) State() State  { return Play }
func (p *SpawnEntity) Bound() Bound  { return Clientbound }

func (p *SpawnEntity) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "spawn entity: entity id")
	}
	if p.EntityUUID, err = buf.ReadUUID(); err != nil {
		return newError(Malformed, err, "spawn entity: uuid")
	}
	if p.Type, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "spawn entity: type")
	}
	if p.X, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "spawn entity: x")
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "spawn entity: y")
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "spawn entity: z")
	}
	if p.Pitch, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "spawn entity: pitch")
	}
	if p.Yaw, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "spawn entity: yaw")
	}
	if p.HeadYaw, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "spawn entity: head yaw")
	}
	if p.Data, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "spawn entity: data")
	}
	if p.VX, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "spawn entity: velocity x")
	}
	if p.VY, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "spawn entity: velocity y")
	}
	if p.VZ, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "spawn entity: velocity z")
	}
	return nil
}

func (p *SpawnEntity) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "spawn entity: client never sends this packet")
}

// RemoveEntities is clientbound, 0x2B.
type RemoveEntities struct {
	EntityIDs []ns.VarInt
}

func (p *RemoveEntities) ID() ns.VarInt { return 0x2B }
func (p *RemoveEntities) State() State  { return Play }
func (p *RemoveEntities) Bound() Bound  { return Clientbound }

func (p *RemoveEntities) Decode(buf *ns.PacketBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "remove entities: count")
	}
	p.EntityIDs = make([]ns.VarInt, count)
	for i := range p.EntityIDs {
		if p.EntityIDs[i], err = buf.ReadVarInt(); err != nil {
			return newError(Malformed, err, "remove entities: id %d", i)
		}
	}
	return nil
}

func (p *RemoveEntities) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "remove entities: client never sends this packet")
}

// UpdateEntityPosition is clientbound, 0x70 — relative-position-only
// movement. Deltas are fixed-point: real = raw/4096.
type UpdateEntityPosition struct {
	EntityID   ns.VarInt
	DX, DY, DZ ns.Int16
	OnGround   ns.Boolean
}

func (p *UpdateEntityPosition) ID() ns.VarInt { return 0x70 }
func (p *UpdateEntityPosition) State() State  { return Play }
func (p *UpdateEntityPosition) Bound() Bound  { return Clientbound }

func (p *UpdateEntityPosition) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "update entity position: entity id")
	}
	if p.DX, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position: dx")
	}
	if p.DY, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position: dy")
	}
	if p.DZ, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position: dz")
	}
	if p.OnGround, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "update entity position: on ground")
	}
	return nil
}

func (p *UpdateEntityPosition) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "update entity position: client never sends this packet")
}

// UpdateEntityPositionAndRotation is clientbound, 0x71.
type UpdateEntityPositionAndRotation struct {
	EntityID     ns.VarInt
	DX, DY, DZ   ns.Int16
	Yaw, Pitch   ns.Angle
	OnGround     ns.Boolean
}

func (p *UpdateEntityPositionAndRotation) ID() ns.VarInt { return 0x71 }
func (p *UpdateEntityPositionAndRotation) State() State  { return Play }
func (p *UpdateEntityPositionAndRotation) Bound() Bound  { return Clientbound }

func (p *UpdateEntityPositionAndRotation) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: entity id")
	}
	if p.DX, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: dx")
	}
	if p.DY, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: dy")
	}
	if p.DZ, err = buf.ReadInt16(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: dz")
	}
	if p.Yaw, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: yaw")
	}
	if p.Pitch, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: pitch")
	}
	if p.OnGround, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "update entity position and rotation: on ground")
	}
	return nil
}

func (p *UpdateEntityPositionAndRotation) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "update entity position and rotation: client never sends this packet")
}

// UpdateEntityRotation is clientbound, 0x72 — rotation-only, no position
// change.
type UpdateEntityRotation struct {
	EntityID   ns.VarInt
	Yaw, Pitch ns.Angle
	OnGround   ns.Boolean
}

func (p *UpdateEntityRotation) ID() ns.VarInt { return 0x72 }
func (p *UpdateEntityRotation) State() State  { return Play }
func (p *UpdateEntityRotation) Bound() Bound  { return Clientbound }

func (p *UpdateEntityRotation) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "update entity rotation: entity id")
	}
	if p.Yaw, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "update entity rotation: yaw")
	}
	if p.Pitch, err = buf.ReadAngle(); err != nil {
		return newError(Malformed, err, "update entity rotation: pitch")
	}
	if p.OnGround, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "update entity rotation: on ground")
	}
	return nil
}

func (p *UpdateEntityRotation) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "update entity rotation: client never sends this packet")
}

// BlockUpdate is clientbound, 0x09 — one block-state change.
type BlockUpdate struct {
	Location ns.Position
	BlockID  ns.VarInt
}

func (p *BlockUpdate) ID() ns.VarInt { return 0x09 }
func (p *BlockUpdate) State() State  { return Play }
func (p *BlockUpdate) Bound() Bound  { return Clientbound }

func (p *BlockUpdate) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Location, err = buf.ReadPosition(); err != nil {
		return newError(Malformed, err, "block update: location")
	}
	if p.BlockID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "block update: block id")
	}
	return nil
}

func (p *BlockUpdate) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "block update: client never sends this packet")
}

// ChunkBatchStart is clientbound, 0x0D, no fields — marks the beginning of
// a batch of ChunkDataAndUpdateLight packets.
type ChunkBatchStart struct{}

func (p *ChunkBatchStart) ID() ns.VarInt                    { return 0x0D }
func (p *ChunkBatchStart) State() State                     { return Play }
func (p *ChunkBatchStart) Bound() Bound                      { return Clientbound }
func (p *ChunkBatchStart) Decode(buf *ns.PacketBuffer) error { return nil }
func (p *ChunkBatchStart) Encode(buf *ns.PacketBuffer) error { return nil }

// ChunkBatchFinished is clientbound, 0x0C — ends a chunk batch; the client
// replies with ChunkBatchReceived carrying its measured processing rate.
type ChunkBatchFinished struct {
	BatchSize ns.VarInt
}

func (p *ChunkBatchFinished) ID() ns.VarInt { return 0x0C }
func (p *ChunkBatchFinished) State() State  { return Play }
func (p *ChunkBatchFinished) Bound() Bound  { return Clientbound }

func (p *ChunkBatchFinished) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "chunk batch finished: batch size")
	}
	p.BatchSize = v
	return nil
}

func (p *ChunkBatchFinished) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "chunk batch finished: client never sends this packet")
}

// ChunkBatchReceived is serverbound, 0x0A — reports the client's measured
// processing rate in chunks per tick, computed as
// 25 / ((now-start)/1e6/batch_size) to target 25ms of work per tick.
type ChunkBatchReceived struct {
	ChunksPerTick ns.Float32
}

func (p *ChunkBatchReceived) ID() ns.VarInt { return 0x0A }
func (p *ChunkBatchReceived) State() State  { return Play }
func (p *ChunkBatchReceived) Bound() Bound  { return Serverbound }

func (p *ChunkBatchReceived) Decode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "chunk batch received: server never sends this packet")
}

func (p *ChunkBatchReceived) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteFloat32(p.ChunksPerTick)
}

// ChunkDataAndUpdateLight is clientbound, 0x25 — a full chunk column plus
// its lighting.
type ChunkDataAndUpdateLight struct {
	ChunkX, ChunkZ ns.Int32
	Data           ns.ChunkData
	Light          ns.LightData
}

func (p *ChunkDataAndUpdateLight) ID() ns.VarInt { return 0x25 }
func (p *ChunkDataAndUpdateLight) State() State  { return Play }
func (p *ChunkDataAndUpdateLight) Bound() Bound  { return Clientbound }

func (p *ChunkDataAndUpdateLight) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.ChunkX, err = buf.ReadInt32(); err != nil {
		return newError(Malformed, err, "chunk data: chunk x")
	}
	if p.ChunkZ, err = buf.ReadInt32(); err != nil {
		return newError(Malformed, err, "chunk data: chunk z")
	}
	if p.Data, err = buf.ReadChunkData(); err != nil {
		return newError(Malformed, err, "chunk data: data")
	}
	if p.Light, err = buf.ReadLightData(); err != nil {
		return newError(Malformed, err, "chunk data: light")
	}
	return nil
}

func (p *ChunkDataAndUpdateLight) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "chunk data: client never sends this packet")
}

// UnloadChunk is clientbound, 0x6D.
type UnloadChunk struct {
	ChunkZ, ChunkX ns.Int32
}

func (p *UnloadChunk) ID() ns.VarInt { return 0x6D }
func (p *UnloadChunk) State() State  { return Play }
func (p *UnloadChunk) Bound() Bound  { return Clientbound }

func (p *UnloadChunk) Decode(buf *ns.PacketBuffer) error {
	var err error
	// wire order is Z then X, matching the vanilla "Unload Chunk" layout.
	if p.ChunkZ, err = buf.ReadInt32(); err != nil {
		return newError(Malformed, err, "unload chunk: chunk z")
	}
	if p.ChunkX, err = buf.ReadInt32(); err != nil {
		return newError(Malformed, err, "unload chunk: chunk x")
	}
	return nil
}

func (p *UnloadChunk) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "unload chunk: client never sends this packet")
}

// SynchronizePlayerPosition is clientbound, 0x41 — authoritative position
// update; each axis and each rotation component may be absolute or
// relative-to-current per the Flags bitmask (bit set = relative).
type PositionFlags ns.Uint8

const (
	FlagRelativeX PositionFlags = 1 << iota
	FlagRelativeY
	FlagRelativeZ
	FlagRelativeYaw
	FlagRelativePitch
)

type SynchronizePlayerPosition struct {
	X, Y, Z    ns.Float64
	VX, VY, VZ ns.Float64
	Yaw, Pitch ns.Float32
	Flags      PositionFlags
	TeleportID ns.VarInt
}

func (p *SynchronizePlayerPosition) ID() ns.VarInt { return 0x41 }
func (p *SynchronizePlayerPosition) State() State  { return Play }
func (p *SynchronizePlayerPosition) Bound() Bound  { return Clientbound }

func (p *SynchronizePlayerPosition) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: x")
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: y")
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: z")
	}
	if p.VX, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: vx")
	}
	if p.VY, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: vy")
	}
	if p.VZ, err = buf.ReadFloat64(); err != nil {
		return newError(Malformed, err, "synchronize player position: vz")
	}
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return newError(Malformed, err, "synchronize player position: yaw")
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return newError(Malformed, err, "synchronize player position: pitch")
	}
	flags, err := buf.ReadUint8()
	if err != nil {
		return newError(Malformed, err, "synchronize player position: flags")
	}
	p.Flags = PositionFlags(flags)
	if p.TeleportID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "synchronize player position: teleport id")
	}
	return nil
}

func (p *SynchronizePlayerPosition) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "synchronize player position: client never sends this packet")
}

// DisconnectPlay is clientbound, 0x1C.
type DisconnectPlay struct {
	Reason ns.TextComponent
}

func (p *DisconnectPlay) ID() ns.VarInt { return 0x1C }
func (p *DisconnectPlay) State() State  { return Play }
func (p *DisconnectPlay) Bound() Bound  { return Clientbound }

func (p *DisconnectPlay) Decode(buf *ns.PacketBuffer) error {
	tc, err := buf.ReadTextComponent()
	if err != nil {
		return newError(Malformed, err, "disconnect (play): reason")
	}
	p.Reason = tc
	return nil
}

func (p *DisconnectPlay) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "disconnect (play): client never sends this packet")
}

// LoginPlay is clientbound, 0x29 — the large world-bootstrap packet sent
// right after entering Play. Only the fields this module's session acts on
// are decoded; the rest (hashed seed, debug/flat flags, portal cooldown,
// etc.) are captured as trailing raw bytes rather than parsed field-by-field,
// since nothing downstream consumes them yet.
type LoginPlay struct {
	EntityID         ns.Int32
	IsHardcore       ns.Boolean
	DimensionNames   []ns.Identifier
	MaxPlayers       ns.VarInt
	ViewDistance     ns.VarInt
	SimulationDistance ns.VarInt
	ReducedDebugInfo ns.Boolean
	RespawnScreen    ns.Boolean
	LimitedCrafting  ns.Boolean
	DimensionType    ns.VarInt
	DimensionName    ns.Identifier
	HashedSeed       ns.Int64
	Rest             ns.ByteArray
}

func (p *LoginPlay) ID() ns.VarInt { return 0x29 }
func (p *LoginPlay) State() State  { return Play }
func (p *LoginPlay) Bound() Bound  { return Clientbound }

func (p *LoginPlay) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadInt32(); err != nil {
		return newError(Malformed, err, "login (play): entity id")
	}
	if p.IsHardcore, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "login (play): is hardcore")
	}
	count, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "login (play): dimension count")
	}
	p.DimensionNames = make([]ns.Identifier, count)
	for i := range p.DimensionNames {
		if p.DimensionNames[i], err = buf.ReadIdentifier(); err != nil {
			return newError(Malformed, err, "login (play): dimension name %d", i)
		}
	}
	if p.MaxPlayers, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "login (play): max players")
	}
	if p.ViewDistance, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "login (play): view distance")
	}
	if p.SimulationDistance, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "login (play): simulation distance")
	}
	if p.ReducedDebugInfo, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "login (play): reduced debug info")
	}
	if p.RespawnScreen, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "login (play): respawn screen")
	}
	if p.LimitedCrafting, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "login (play): limited crafting")
	}
	if p.DimensionType, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "login (play): dimension type")
	}
	if p.DimensionName, err = buf.ReadIdentifier(); err != nil {
		return newError(Malformed, err, "login (play): dimension name")
	}
	if p.HashedSeed, err = buf.ReadInt64(); err != nil {
		return newError(Malformed, err, "login (play): hashed seed")
	}
	p.Rest, err = readRemaining(buf)
	return err
}

func (p *LoginPlay) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "login (play): client never sends this packet")
}

// Respawn is clientbound, 0x2F — the per-dimension fields this module acts
// on, with the rest (last death location, portal cooldown, sea level) kept
// as trailing raw bytes.
type Respawn struct {
	DimensionType ns.VarInt
	DimensionName ns.Identifier
	HashedSeed    ns.Int64
	Rest          ns.ByteArray
}

func (p *Respawn) ID() ns.VarInt { return 0x2F }
func (p *Respawn) State() State  { return Play }
func (p *Respawn) Bound() Bound  { return Clientbound }

func (p *Respawn) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.DimensionType, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "respawn: dimension type")
	}
	if p.DimensionName, err = buf.ReadIdentifier(); err != nil {
		return newError(Malformed, err, "respawn: dimension name")
	}
	if p.HashedSeed, err = buf.ReadInt64(); err != nil {
		return newError(Malformed, err, "respawn: hashed seed")
	}
	p.Rest, err = readRemaining(buf)
	return err
}

func (p *Respawn) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "respawn: client never sends this packet")
}

// CombatDeath is clientbound, 0x2D — the client must reply with
// ClientStatus(PerformRespawn).
type CombatDeath struct {
	PlayerID ns.VarInt
	Message  ns.TextComponent
}

func (p *CombatDeath) ID() ns.VarInt { return 0x2D }
func (p *CombatDeath) State() State  { return Play }
func (p *CombatDeath) Bound() Bound  { return Clientbound }

func (p *CombatDeath) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.PlayerID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "combat death: player id")
	}
	if p.Message, err = buf.ReadTextComponent(); err != nil {
		return newError(Malformed, err, "combat death: message")
	}
	return nil
}

func (p *CombatDeath) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "combat death: client never sends this packet")
}

// SystemChatMessage is clientbound, 0x62.
type SystemChatMessage struct {
	Content ns.TextComponent
	Overlay ns.Boolean
}

func (p *SystemChatMessage) ID() ns.VarInt { return 0x62 }
func (p *SystemChatMessage) State() State  { return Play }
func (p *SystemChatMessage) Bound() Bound  { return Clientbound }

func (p *SystemChatMessage) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Content, err = buf.ReadTextComponent(); err != nil {
		return newError(Malformed, err, "system chat message: content")
	}
	if p.Overlay, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "system chat message: overlay")
	}
	return nil
}

func (p *SystemChatMessage) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "system chat message: client never sends this packet")
}

// KeepAlivePlay is clientbound, 0x26.
type KeepAlivePlay struct {
	ID_ ns.Int64
}

func (p *KeepAlivePlay) ID() ns.VarInt { return 0x26 }
func (p *KeepAlivePlay) State() State  { return Play }
func (p *KeepAlivePlay) Bound() Bound  { return Clientbound }

func (p *KeepAlivePlay) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt64()
	if err != nil {
		return newError(Malformed, err, "keep alive (play): id")
	}
	p.ID_ = v
	return nil
}

func (p *KeepAlivePlay) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "keep alive (play): client never sends this packet")
}

// PingPlay is clientbound, 0x33 — answered by PingResponsePlay.
type PingPlay struct {
	ID_ ns.Int32
}

func (p *PingPlay) ID() ns.VarInt { return 0x33 }
func (p *PingPlay) State() State  { return Play }
func (p *PingPlay) Bound() Bound  { return Clientbound }

func (p *PingPlay) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt32()
	if err != nil {
		return newError(Malformed, err, "ping (play): id")
	}
	p.ID_ = v
	return nil
}

func (p *PingPlay) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "ping (play): client never sends this packet")
}

// SetEquipment is clientbound, 0x4E — one entity's visible equipment
// slots. The Slot payloads themselves use the component-tagged Slot codec
// from net_structures; only the equipment-slot enumeration loop lives here.
type EquipmentEntry struct {
	Slot ns.Int8
	Item ns.Slot
}

type SetEquipment struct {
	EntityID ns.VarInt
	Entries  []EquipmentEntry
}

func (p *SetEquipment) ID() ns.VarInt { return 0x4E }
func (p *SetEquipment) State() State  { return Play }
func (p *SetEquipment) Bound() Bound  { return Clientbound }

func (p *SetEquipment) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "set equipment: entity id")
	}
	// Equipment entries are a sentinel-terminated list: the high bit of
	// Slot marks "more entries follow".
	for {
		raw, err := buf.ReadInt8()
		if err != nil {
			return newError(Malformed, err, "set equipment: slot")
		}
		more := uint8(raw)&0x80 != 0
		entry := EquipmentEntry{Slot: raw & 0x7F}
		if entry.Item, err = buf.ReadSlot(); err != nil {
			return newError(Malformed, err, "set equipment: item")
		}
		p.Entries = append(p.Entries, entry)
		if !more {
			break
		}
	}
	return nil
}

func (p *SetEquipment) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "set equipment: client never sends this packet")
}

// opaquePlay is the accept-and-decode-as-raw-bytes placeholder for PLAY
// packets this module tracks by id (so a miss in Lookup is a deliberate
// "not modeled yet" rather than silently falling into the unknown-id path)
// but does not give a typed shape to — PlayerInfoUpdate and EntityMetadata,
// whose tagged-union payloads are large enough that spec.md treats a
// hand-written escape hatch as the expected shape (spec.md §4.2, §9).
type opaquePlay struct {
	packetID ns.VarInt
	name     string
	Raw      ns.ByteArray
}

func (p *opaquePlay) ID() ns.VarInt { return p.packetID }
func (p *opaquePlay) State() State  { return Play }
func (p *opaquePlay) Bound() Bound  { return Clientbound }

func (p *opaquePlay) Decode(buf *ns.PacketBuffer) error {
	raw, err := readRemaining(buf)
	if err != nil {
		return newError(Malformed, err, "%s: body", p.name)
	}
	p.Raw = raw
	return nil
}

func (p *opaquePlay) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteFixedByteArray(p.Raw)
}

func init() {
	Register("ConfirmTeleportation", Play, Serverbound, 0x00, func() Packet { return &ConfirmTeleportation{} })
	Register("ChatMessage", Play, Serverbound, 0x03, func() Packet { return &ChatMessage{} })
	Register("ClientStatus", Play, Serverbound, 0x04, func() Packet { return &ClientStatus{} })
	Register("ChatCommand", Play, Serverbound, 0x05, func() Packet { return &ChatCommand{} })
	Register("PlayerPositionAndRotation", Play, Serverbound, 0x1A, func() Packet { return &PlayerPositionAndRotation{} })
	Register("ChunkBatchReceived", Play, Serverbound, 0x0A, func() Packet { return &ChunkBatchReceived{} })
	Register("PingResponsePlay", Play, Serverbound, 0x18, func() Packet { return &PingResponsePlay{} })
	Register("ServerboundKeepAlivePlay", Play, Serverbound, 0x1B, func() Packet { return &ServerboundKeepAlivePlay{} })

	Register("SpawnEntity", Play, Clientbound, 0x01, func() Packet { return &SpawnEntity{} })
	Register("BlockUpdate", Play, Clientbound, 0x09, func() Packet { return &BlockUpdate{} })
	Register("ChunkBatchFinished", Play, Clientbound, 0x0C, func() Packet { return &ChunkBatchFinished{} })
	Register("ChunkBatchStart", Play, Clientbound, 0x0D, func() Packet { return &ChunkBatchStart{} })
	Register("DisconnectPlay", Play, Clientbound, 0x1C, func() Packet { return &DisconnectPlay{} })
	Register("EntityMetadata", Play, Clientbound, 0x1F, func() Packet { return &opaquePlay{packetID: 0x1F, name: "entity metadata"} })
	Register("ChunkDataAndUpdateLight", Play, Clientbound, 0x25, func() Packet { return &ChunkDataAndUpdateLight{} })
	Register("KeepAlivePlay", Play, Clientbound, 0x26, func() Packet { return &KeepAlivePlay{} })
	Register("LoginPlay", Play, Clientbound, 0x29, func() Packet { return &LoginPlay{} })
	Register("RemoveEntities", Play, Clientbound, 0x2B, func() Packet { return &RemoveEntities{} })
	Register("CombatDeath", Play, Clientbound, 0x2D, func() Packet { return &CombatDeath{} })
	Register("Respawn", Play, Clientbound, 0x2F, func() Packet { return &Respawn{} })
	Register("PingPlay", Play, Clientbound, 0x33, func() Packet { return &PingPlay{} })
	Register("PlayerInfoUpdate", Play, Clientbound, 0x3E, func() Packet { return &opaquePlay{packetID: 0x3E, name: "player info update"} })
	Register("SynchronizePlayerPosition", Play, Clientbound, 0x41, func() Packet { return &SynchronizePlayerPosition{} })
	Register("SetEquipment", Play, Clientbound, 0x4E, func() Packet { return &SetEquipment{} })
	Register("SystemChatMessage", Play, Clientbound, 0x62, func() Packet { return &SystemChatMessage{} })
	Register("UnloadChunk", Play, Clientbound, 0x6D, func() Packet { return &UnloadChunk{} })
	Register("UpdateEntityPosition", Play, Clientbound, 0x70, func() Packet { return &UpdateEntityPosition{} })
	Register("UpdateEntityPositionAndRotation", Play, Clientbound, 0x71, func() Packet { return &UpdateEntityPositionAndRotation{} })
	Register("UpdateEntityRotation", Play, Clientbound, 0x72, func() Packet { return &UpdateEntityRotation{} })
}

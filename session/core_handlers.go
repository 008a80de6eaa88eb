package session

import (
	"time"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
	"github.com/brackenfield/mcclient/world"
)

// runCoreHandlers implements every "Required ... behaviors" item spec.md
// §4.4 assigns to the session itself, as opposed to the application:
// transport-level replies (keep-alive echo, teleport confirmation, chunk
// batch acknowledgement) and bookkeeping (chunk/entity maps, player
// position/dimension) that every session needs regardless of what the
// embedding application does with the data. These run before any
// application-registered handler for the same packet type (session.go's
// drainInbound ordering).
func (s *Session) runCoreHandlers(pkt protocol.Packet) {
	switch p := pkt.(type) {

	// --- Login state ---
	case *protocol.SetCompression:
		s.setCompression(int(p.Threshold))

	case *protocol.LoginSuccess:
		s.sendOrLog(&protocol.LoginAcknowledged{})
		s.setState(protocol.Configuration)
		s.sendOrLog(defaultClientInformation())

	case *protocol.DisconnectLogin:
		s.debugf("disconnected during login: %v", p.Reason)

	case *protocol.EncryptionRequest:
		s.logger.Printf("fatal: server requested encryption (online-mode auth is out of scope)")

	// --- Configuration state ---
	case *protocol.KeepAliveConfiguration:
		s.sendOrLog(&protocol.ServerboundKeepAliveConfiguration{ID_: p.ID_})

	case *protocol.ClientboundPluginMessage:
		s.sendOrLog(&protocol.ServerboundPluginMessage{Channel: p.Channel, Data: p.Data})

	case *protocol.SelectKnownPacks:
		s.sendOrLog(protocol.NewSelectKnownPacksServerbound(p.Packs))

	case *protocol.FinishConfiguration:
		s.sendOrLog(&protocol.AcknowledgeFinishConfiguration{})
		s.setState(protocol.Play)

	// --- Play state ---
	case *protocol.KeepAlivePlay:
		s.sendOrLog(&protocol.ServerboundKeepAlivePlay{ID_: p.ID_})

	case *protocol.PingPlay:
		s.sendOrLog(&protocol.PingResponsePlay{ID_: p.ID_})

	case *protocol.ChunkBatchStart:
		s.chunkBatchStartedAt = time.Now()

	case *protocol.ChunkBatchFinished:
		rate := chunksPerTick(time.Since(s.chunkBatchStartedAt), int(p.BatchSize))
		s.sendOrLog(&protocol.ChunkBatchReceived{ChunksPerTick: rate})

	case *protocol.ChunkDataAndUpdateLight:
		dim := s.Player.Dimension
		chunk := world.NewChunk(int32(p.ChunkX), int32(p.ChunkZ), dim)
		if err := chunk.DecodeSections(p.Data.Data); err != nil {
			s.logger.Printf("chunk %d,%d: %v", p.ChunkX, p.ChunkZ, err)
			break
		}
		chunk.ApplyHeightmaps(p.Data.Heightmaps)
		s.Chunks.Put(dim, int32(p.ChunkX), int32(p.ChunkZ), chunk)

	case *protocol.UnloadChunk:
		s.Chunks.Delete(s.Player.Dimension, int32(p.ChunkX), int32(p.ChunkZ))

	case *protocol.BlockUpdate:
		s.Chunks.SetBlockAt(s.Player.Dimension, p.Location.X, p.Location.Y, p.Location.Z, uint32(p.BlockID))

	case *protocol.SynchronizePlayerPosition:
		x, y, z, yaw, pitch := s.Player.Position()
		if p.Flags&protocol.FlagRelativeX == 0 {
			x = float64(p.X)
		} else {
			x += float64(p.X)
		}
		if p.Flags&protocol.FlagRelativeY == 0 {
			y = float64(p.Y)
		} else {
			y += float64(p.Y)
		}
		if p.Flags&protocol.FlagRelativeZ == 0 {
			z = float64(p.Z)
		} else {
			z += float64(p.Z)
		}
		if p.Flags&protocol.FlagRelativeYaw == 0 {
			yaw = float32(p.Yaw)
		} else {
			yaw += float32(p.Yaw)
		}
		if p.Flags&protocol.FlagRelativePitch == 0 {
			pitch = float32(p.Pitch)
		} else {
			pitch += float32(p.Pitch)
		}
		s.Player.SetPosition(x, y, z, yaw, pitch)
		s.sendOrLog(&protocol.ConfirmTeleportation{TeleportID: p.TeleportID})

	case *protocol.LoginPlay:
		s.Player.EntityID = int32(p.EntityID)
		s.Player.Dimension = dimensionFromTypeID(int32(p.DimensionType))

	case *protocol.Respawn:
		// DimensionName is already resolved by the caller's registry;
		// this module only tracks overworld/nether/end via the dimension
		// type VarInt sent alongside LoginPlay/Respawn, not the full
		// registry identifier space.
		s.Player.Dimension = dimensionFromTypeID(int32(p.DimensionType))

	case *protocol.CombatDeath:
		s.sendOrLog(&protocol.ClientStatus{Action: protocol.PerformRespawn})

	case *protocol.SpawnEntity:
		s.Entities.Spawn(&world.Entity{
			ID:   int32(p.EntityID),
			UUID: [16]byte(p.EntityUUID),
			Type: int32(p.Type),
			X:    float64(p.X), Y: float64(p.Y), Z: float64(p.Z),
			VX: int16(p.VX), VY: int16(p.VY), VZ: int16(p.VZ),
			Pitch: float32(p.Pitch.Degrees()), Yaw: float32(p.Yaw.Degrees()), HeadYaw: float32(p.HeadYaw.Degrees()),
		})

	case *protocol.RemoveEntities:
		ids := make([]int32, len(p.EntityIDs))
		for i, id := range p.EntityIDs {
			ids[i] = int32(id)
		}
		s.Entities.Remove(ids...)

	case *protocol.UpdateEntityPosition:
		if e := s.Entities.Get(int32(p.EntityID)); e != nil {
			e.ApplyDelta(int16(p.DX), int16(p.DY), int16(p.DZ))
			e.OnGround = bool(p.OnGround)
		}

	case *protocol.UpdateEntityPositionAndRotation:
		if e := s.Entities.Get(int32(p.EntityID)); e != nil {
			e.ApplyDelta(int16(p.DX), int16(p.DY), int16(p.DZ))
			e.Yaw, e.Pitch = float32(p.Yaw.Degrees()), float32(p.Pitch.Degrees())
			e.OnGround = bool(p.OnGround)
		}

	case *protocol.UpdateEntityRotation:
		if e := s.Entities.Get(int32(p.EntityID)); e != nil {
			e.Yaw, e.Pitch = float32(p.Yaw.Degrees()), float32(p.Pitch.Degrees())
			e.OnGround = bool(p.OnGround)
		}

	case *protocol.DisconnectPlay:
		s.debugf("disconnected: %v", p.Reason)
	}
}

// sendOrLog sends pkt and logs (rather than propagates) a failure, since
// core handlers run in the I/O actor and a reply failure here means the
// connection is already going down — the actor's own Read loop will
// surface the real error on its next iteration.
func (s *Session) sendOrLog(pkt protocol.Packet) {
	if err := s.Send(pkt); err != nil {
		s.logger.Printf("core handler: failed to send %T: %v", pkt, err)
	}
}

// chunksPerTick implements the wire-mandated chunks-per-tick formula
// (25 / ((now-start)/1e6/batch_size)) used to reply to CHUNK_BATCH_FINISHED:
// target 25ms of processing per tick, scaled by how many chunks the batch
// packed into the time it actually took. The formula is reproduced exactly
// as specified rather than "corrected" to something smoother; a batch_size
// of zero (or an elapsed time of zero, possible on a very fast loopback
// round trip) has no well-defined rate and reports zero instead of dividing
// by zero.
func chunksPerTick(elapsed time.Duration, batchSize int) ns.Float32 {
	if batchSize <= 0 || elapsed <= 0 {
		return 0
	}
	millisPerChunk := float64(elapsed.Nanoseconds()) / 1e6 / float64(batchSize)
	return ns.Float32(25 / millisPerChunk)
}

func dimensionFromTypeID(id int32) world.Dimension {
	switch id {
	case 1:
		return world.Nether
	case 2:
		return world.End
	default:
		return world.Overworld
	}
}

func defaultClientInformation() *protocol.ClientInformation {
	return &protocol.ClientInformation{
		Locale:              "en_US",
		ViewDistance:        10,
		ChatMode:            0,
		ChatColors:          true,
		DisplayedSkinParts:  0x7F,
		MainHand:            1,
		EnableTextFiltering: false,
		AllowServerListings: true,
		ParticleStatus:      0,
	}
}

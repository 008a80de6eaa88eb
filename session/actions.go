package session

import (
	"fmt"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
)

// SendChatMessage sends an unsigned chat message. msg longer than 256 bytes
// is rejected rather than silently truncated.
func (s *Session) SendChatMessage(msg string) error {
	if len(msg) > 256 {
		return fmt.Errorf("session: chat message exceeds 256 bytes")
	}
	return s.Send(&protocol.ChatMessage{Message: ns.String(msg)})
}

// SendChatCommand sends an unsigned `/command` invocation. cmd should not
// include the leading slash.
func (s *Session) SendChatCommand(cmd string) error {
	if len(cmd) > 256 {
		return fmt.Errorf("session: chat command exceeds 256 bytes")
	}
	return s.Send(&protocol.ChatCommand{Command: ns.String(cmd)})
}

// LookAt updates the local player's facing and tells the server, without
// moving. yaw/pitch are in degrees.
func (s *Session) LookAt(yaw, pitch float32) error {
	s.Player.LookAt(yaw, pitch)
	x, y, z, _, _ := s.Player.Position()
	return s.sendMovePacket(x, y, z, yaw, pitch)
}

// Move applies a relative move to the local player's position and informs
// the server, keeping current facing.
func (s *Session) Move(dx, dy, dz float64) error {
	s.Player.Move(dx, dy, dz)
	x, y, z, yaw, pitch := s.Player.Position()
	return s.sendMovePacket(x, y, z, yaw, pitch)
}

func (s *Session) sendMovePacket(x, y, z float64, yaw, pitch float32) error {
	return s.Send(&protocol.PlayerPositionAndRotation{
		X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch, OnGround: true,
	})
}

// Package player holds the local client's own entity/account state: the
// offline-mode UUID it presents at login, the server-assigned profile once
// login completes, and the mutable position/health the PLAY-state handlers
// update as packets arrive.
package player

import (
	"crypto/md5"
	"fmt"
	"sync"

	"github.com/google/uuid"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/world"
)

// Player is the local client's own entity. Position fields are guarded by
// mu since both SynchronizePlayerPosition (server-authoritative) and the
// client's own movement helpers mutate them.
type Player struct {
	mu sync.Mutex

	Name       string
	UUID       ns.UUID
	EntityID   int32
	Dimension  world.Dimension

	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool

	Health     float32
	Food       int32
	Saturation float32
}

// New creates a Player identified by name, deriving its offline-mode UUID
// the way vanilla does: UUID.nameUUIDFromBytes("OfflinePlayer:"+name) — an
// MD5-based version-3 UUID, not the random version-4 kind.
func New(name string) *Player {
	return &Player{
		Name: name,
		UUID: OfflineUUID(name),
	}
}

// OfflineUUID reproduces vanilla's offline-mode UUID derivation: an
// MD5 namespace hash of "OfflinePlayer:<name>", coerced to RFC 4122 version
// 3 (the same algorithm as Java's UUID.nameUUIDFromBytes).
func OfflineUUID(name string) ns.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	var out ns.UUID
	copy(out[:], sum[:])
	return out
}

// ParseUUID is a thin wrapper around google/uuid for the rare case this
// module needs to parse a server-supplied UUID string (e.g. from a
// command-line flag) into the wire UUID type.
func ParseUUID(s string) (ns.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ns.UUID{}, fmt.Errorf("parse uuid %q: %w", s, err)
	}
	var out ns.UUID
	copy(out[:], parsed[:])
	return out, nil
}

// SetPosition applies an absolute, server-authoritative position update
// (SynchronizePlayerPosition).
func (p *Player) SetPosition(x, y, z float64, yaw, pitch float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.X, p.Y, p.Z = x, y, z
	p.Yaw, p.Pitch = yaw, pitch
}

// Move applies a local, client-initiated relative move (used by the
// application-facing Session.Move helper).
func (p *Player) Move(dx, dy, dz float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.X += dx
	p.Y += dy
	p.Z += dz
}

// LookAt sets facing without moving.
func (p *Player) LookAt(yaw, pitch float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Yaw, p.Pitch = yaw, pitch
}

// Position returns a consistent snapshot of the current position/rotation.
func (p *Player) Position() (x, y, z float64, yaw, pitch float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.X, p.Y, p.Z, p.Yaw, p.Pitch
}

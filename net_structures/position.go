package net_structures

import "io"

// Position bit widths: the block-position packing squeezes three signed
// coordinates into one Int64 — X gets 26 bits, Z 26, Y only 12 (vanilla
// worlds are far wider than they are tall).
const (
	posXBits = 26
	posZBits = 26
	posYBits = 12
)

// Position is a block coordinate, wire-packed as a single 64-bit integer:
// bits 38-63 hold X, bits 12-37 hold Z, bits 0-11 hold Y, each two's
// complement within its own width.
type Position struct {
	X, Y, Z int
}

func NewPosition(x, y, z int) Position { return Position{X: x, Y: y, Z: z} }

func (p Position) Encode(w io.Writer) error { return Int64(p.Pack()).Encode(w) }

func DecodePosition(r io.Reader) (Position, error) {
	raw, err := DecodeInt64(r)
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(int64(raw)), nil
}

// Pack squeezes X/Y/Z into the layout Encode writes.
func (p Position) Pack() int64 {
	return (int64(p.X)&(1<<posXBits-1))<<(posZBits+posYBits) |
		(int64(p.Z)&(1<<posZBits-1))<<posYBits |
		(int64(p.Y) & (1<<posYBits - 1))
}

// UnpackPosition reverses Pack. Each field is pulled out by shifting its top
// bit up to bit 63 and then arithmetic-shifting back down, which sign-
// extends for free — the same trick the packing order itself was chosen to
// make easy.
func UnpackPosition(raw int64) Position {
	return Position{
		X: bitField(raw, posZBits+posYBits, posXBits),
		Z: bitField(raw, posYBits, posZBits),
		Y: bitField(raw, 0, posYBits),
	}
}

// bitField extracts a signed field of width `width` starting `shift` bits
// from the LSB.
func bitField(raw int64, shift, width int) int {
	return int(raw << (64 - shift - width) >> (64 - width))
}

// GlobalPos pairs a dimension identifier with a Position, for fields like
// the death/respawn location that name both.
type GlobalPos struct {
	Dimension Identifier
	Pos       Position
}

func (g GlobalPos) Encode(w io.Writer) error {
	if err := g.Dimension.Encode(w); err != nil {
		return err
	}
	return g.Pos.Encode(w)
}

func DecodeGlobalPos(r io.Reader) (GlobalPos, error) {
	dim, err := DecodeIdentifier(r)
	if err != nil {
		return GlobalPos{}, err
	}
	pos, err := DecodePosition(r)
	if err != nil {
		return GlobalPos{}, err
	}
	return GlobalPos{Dimension: dim, Pos: pos}, nil
}

package net_structures

import (
	"io"
	"math"
)

const fullTurn = 256 // units per 360 degrees: one unit is 360/256 = 1.40625 degrees

// Angle is a rotation packed into a single byte, 256 units to a full turn.
// Used for entity yaw/pitch/head-yaw fields, which never need sub-degree
// precision over the wire.
type Angle uint8

// Encode writes the Angle's single byte to w.
func (a Angle) Encode(w io.Writer) error {
	_, err := w.Write([]byte{byte(a)})
	return err
}

// DecodeAngle reads one byte from r and reinterprets it as an Angle.
func DecodeAngle(r io.Reader) (Angle, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return Angle(b[0]), nil
}

// AngleFromDegrees wraps degrees into [0,360) and quantizes it down to the
// whole Angle unit at or below it (the fraction is truncated, not rounded).
func AngleFromDegrees(degrees float64) Angle {
	wrapped := math.Mod(degrees, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	return Angle(wrapped * fullTurn / 360)
}

// Degrees reports the Angle as degrees in [0,360).
func (a Angle) Degrees() float64 {
	return float64(a) * 360 / fullTurn
}

// Radians reports the Angle in radians, derived from Degrees rather than
// repeating the unit conversion a second time.
func (a Angle) Radians() float64 {
	return a.Degrees() * math.Pi / 180
}

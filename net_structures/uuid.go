package net_structures

import (
	"fmt"
	"io"

	guuid "github.com/google/uuid"
)

// UUID is the wire form of a 128-bit identifier: two big-endian 64-bit
// halves, no hyphens, no textual representation at all. String parsing
// below borrows google/uuid rather than hand-rolling hex validation, since
// the module already pulls that package in for player.ParseUUID.
type UUID [16]byte

// NilUUID is the all-zero UUID profile packets use for "no UUID present".
var NilUUID = UUID{}

func (u UUID) Encode(w io.Writer) error {
	_, err := w.Write(u[:])
	return err
}

func DecodeUUID(r io.Reader) (UUID, error) {
	var u UUID
	_, err := io.ReadFull(r, u[:])
	return u, err
}

// UUIDFromBytes wraps an existing 16-byte slice as a UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	if len(b) != 16 {
		return UUID{}, fmt.Errorf("uuid: want 16 bytes, got %d", len(b))
	}
	var u UUID
	copy(u[:], b)
	return u, nil
}

// UUIDFromString parses either hyphenated or bare-hex UUID text.
func UUIDFromString(s string) (UUID, error) {
	parsed, err := guuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("uuid: %w", err)
	}
	return UUID(parsed), nil
}

// String renders the UUID in standard hyphenated form.
func (u UUID) String() string {
	return guuid.UUID(u).String()
}

// MostSignificantBits and LeastSignificantBits split the UUID the way the
// GameProfile/login packets carry it historically: two signed 64-bit halves
// rather than one 16-byte blob, for code that builds a UUID field-by-field.
func (u UUID) MostSignificantBits() int64 {
	var msb uint64
	for _, b := range u[0:8] {
		msb = msb<<8 | uint64(b)
	}
	return int64(msb)
}

func (u UUID) LeastSignificantBits() int64 {
	var lsb uint64
	for _, b := range u[8:16] {
		lsb = lsb<<8 | uint64(b)
	}
	return int64(lsb)
}

// UUIDFromInt64s rebuilds a UUID from the msb/lsb halves above.
func UUIDFromInt64s(msb, lsb int64) UUID {
	var u UUID
	for i := 0; i < 8; i++ {
		u[i] = byte(uint64(msb) >> uint(56-8*i))
		u[8+i] = byte(uint64(lsb) >> uint(56-8*i))
	}
	return u
}

// IsNil reports whether this is the all-zero UUID.
func (u UUID) IsNil() bool { return u == NilUUID }

// ValidateUUID reports whether s parses as a UUID, using the same
// google/uuid parser as UUIDFromString.
func ValidateUUID(s string) bool {
	_, err := guuid.Parse(s)
	return err == nil
}

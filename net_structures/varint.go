package net_structures

import (
	"fmt"
	"io"
)

// VarInt/VarLong are LEB128-style variable-length integers: 7 bits of data
// per byte, high bit set while more bytes follow. The algorithm is fixed by
// the wire format (spec.md §4.1) — there's no alternate encoding to choose —
// so VarInt and VarLong share one generic core (varintEncode/varintDecode)
// parameterized on word width and max byte count, rather than each
// reimplementing the same loop at a different bit width.
//
//	0          -> [0x00]
//	128        -> [0x80, 0x01]
//	2147483647 -> [0xff, 0xff, 0xff, 0xff, 0x07]
//	-1 (int32) -> [0xff, 0xff, 0xff, 0xff, 0x0f]

// varintUnsigned is satisfied by the unsigned carriers VarInt and VarLong
// encode through: uint32 for the 32-bit form, uint64 for the 64-bit form.
type varintUnsigned interface {
	~uint32 | ~uint64
}

// varintEncode appends the LEB128 bytes for value into buf, returning the
// bytes actually used.
func varintEncode[U varintUnsigned](buf []byte, value U) []byte {
	n := 0
	for {
		if value&^0x7F == 0 {
			buf[n] = byte(value)
			return buf[:n+1]
		}
		buf[n] = byte(value&0x7F) | 0x80
		n++
		value >>= 7
	}
}

// varintDecode reads LEB128 bytes from r into an unsigned accumulator of
// type U, rejecting a value that runs past maxBits worth of 7-bit groups
// (the wire format's OVERFLOW bound).
func varintDecode[U varintUnsigned](r io.Reader, maxBits uint, name string) (U, error) {
	var value U
	var shift uint
	var b [1]byte

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= U(b[0]&0x7F) << shift
		if b[0]&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift >= maxBits {
			return 0, fmt.Errorf("%s is too big", name)
		}
	}
}

// VarInt is a variable-length signed 32-bit integer, up to 5 bytes on the
// wire.
type VarInt int32

func (v VarInt) Encode(w io.Writer) error {
	var buf [5]byte
	_, err := w.Write(varintEncode(buf[:], uint32(v)))
	return err
}

// ToBytes encodes the VarInt without writing it anywhere, for callers (the
// framer's length-prefix construction) that need the bytes in hand before
// they know the final buffer layout.
func (v VarInt) ToBytes() (ByteArray, error) {
	var buf [5]byte
	return varintEncode(buf[:], uint32(v)), nil
}

// Len reports how many bytes Encode would write, without doing the work.
func (v VarInt) Len() int {
	switch u := uint32(v); {
	case u < 1<<7:
		return 1
	case u < 1<<14:
		return 2
	case u < 1<<21:
		return 3
	case u < 1<<28:
		return 4
	default:
		return 5
	}
}

func DecodeVarInt(r io.Reader) (VarInt, error) {
	u, err := varintDecode[uint32](r, 35, "VarInt")
	return VarInt(u), err
}

// VarLong is the 64-bit counterpart of VarInt, up to 10 bytes on the wire.
type VarLong int64

func (v VarLong) Encode(w io.Writer) error {
	var buf [10]byte
	_, err := w.Write(varintEncode(buf[:], uint64(v)))
	return err
}

func (v VarLong) ToBytes() (ByteArray, error) {
	var buf [10]byte
	return varintEncode(buf[:], uint64(v)), nil
}

func (v VarLong) Len() int {
	u := uint64(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

func DecodeVarLong(r io.Reader) (VarLong, error) {
	u, err := varintDecode[uint64](r, 70, "VarLong")
	return VarLong(u), err
}

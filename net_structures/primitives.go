package net_structures

import (
	"encoding/binary"
	"io"
	"math"
)

// Numeric primitives. Every multi-byte integer and float on the wire is
// big-endian; the single-byte types have no endianness to speak of.

// writeBytes is the one place every fixed-width Encode funnels through.
func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// readBytes reads exactly n bytes or reports the short read as an error.
func readBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(r, b)
	return b, err
}

// Boolean is a single byte, 0x00 or 0x01.
type Boolean bool

func (v Boolean) Encode(w io.Writer) error {
	if v {
		return writeBytes(w, []byte{1})
	}
	return writeBytes(w, []byte{0})
}

func DecodeBoolean(r io.Reader) (Boolean, error) {
	b, err := readBytes(r, 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// Int8 is a signed byte.
type Int8 int8

func (v Int8) Encode(w io.Writer) error { return writeBytes(w, []byte{byte(v)}) }

func DecodeInt8(r io.Reader) (Int8, error) {
	b, err := readBytes(r, 1)
	if err != nil {
		return 0, err
	}
	return Int8(b[0]), nil
}

// Uint8 is an unsigned byte.
type Uint8 uint8

func (v Uint8) Encode(w io.Writer) error { return writeBytes(w, []byte{byte(v)}) }

func DecodeUint8(r io.Reader) (Uint8, error) {
	b, err := readBytes(r, 1)
	if err != nil {
		return 0, err
	}
	return Uint8(b[0]), nil
}

// Int16 is a big-endian signed 16-bit integer.
type Int16 int16

func (v Int16) Encode(w io.Writer) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return writeBytes(w, b[:])
}

func DecodeInt16(r io.Reader) (Int16, error) {
	b, err := readBytes(r, 2)
	if err != nil {
		return 0, err
	}
	return Int16(binary.BigEndian.Uint16(b)), nil
}

// Uint16 is a big-endian unsigned 16-bit integer.
type Uint16 uint16

func (v Uint16) Encode(w io.Writer) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return writeBytes(w, b[:])
}

func DecodeUint16(r io.Reader) (Uint16, error) {
	b, err := readBytes(r, 2)
	if err != nil {
		return 0, err
	}
	return Uint16(binary.BigEndian.Uint16(b)), nil
}

// Int32 is a big-endian signed 32-bit integer.
type Int32 int32

func (v Int32) Encode(w io.Writer) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return writeBytes(w, b[:])
}

func DecodeInt32(r io.Reader) (Int32, error) {
	b, err := readBytes(r, 4)
	if err != nil {
		return 0, err
	}
	return Int32(binary.BigEndian.Uint32(b)), nil
}

// Int64 is a big-endian signed 64-bit integer.
type Int64 int64

func (v Int64) Encode(w io.Writer) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return writeBytes(w, b[:])
}

func DecodeInt64(r io.Reader) (Int64, error) {
	b, err := readBytes(r, 8)
	if err != nil {
		return 0, err
	}
	return Int64(binary.BigEndian.Uint64(b)), nil
}

// Float32 is a big-endian IEEE 754 single-precision float. The wire carries
// the bit pattern, not a decimal representation, so encode/decode round
// through Float32bits/Float32frombits rather than any text conversion.
type Float32 float32

func (v Float32) Encode(w io.Writer) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(v)))
	return writeBytes(w, b[:])
}

func DecodeFloat32(r io.Reader) (Float32, error) {
	b, err := readBytes(r, 4)
	if err != nil {
		return 0, err
	}
	return Float32(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
}

// Float64 is a big-endian IEEE 754 double-precision float.
type Float64 float64

func (v Float64) Encode(w io.Writer) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(v)))
	return writeBytes(w, b[:])
}

func DecodeFloat64(r io.Reader) (Float64, error) {
	b, err := readBytes(r, 8)
	if err != nil {
		return 0, err
	}
	return Float64(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
}

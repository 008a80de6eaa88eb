package net_structures

import (
	"bytes"
	"fmt"
	"io"
)

// PacketBuffer is the single read-or-write cursor every packet's Decode and
// Encode method threads through. A given instance is either reading (reader
// set, writer nil) or writing (writer set, reader nil) — it never does both.
type PacketBuffer struct {
	reader io.Reader
	writer io.Writer

	// buf mirrors writer when writer mode owns its own backing store, so
	// Bytes()/Len()/Reset() have something to read back from.
	buf *bytes.Buffer
}

// NewReader wraps a decoded byte slice for sequential field reads.
func NewReader(data []byte) *PacketBuffer {
	return &PacketBuffer{reader: bytes.NewReader(data)}
}

// NewReaderFrom wraps an arbitrary io.Reader, for cases where the payload
// isn't already buffered in memory (e.g. NBT decoded straight off the wire).
func NewReaderFrom(r io.Reader) *PacketBuffer {
	return &PacketBuffer{reader: r}
}

// NewWriter allocates a fresh in-memory buffer to encode a packet body into.
func NewWriter() *PacketBuffer {
	b := new(bytes.Buffer)
	return &PacketBuffer{writer: b, buf: b}
}

// NewWriterTo wraps an arbitrary io.Writer for streaming encode, with no
// Bytes()/Len() support since there's no backing buffer to read back from.
func NewWriterTo(w io.Writer) *PacketBuffer {
	return &PacketBuffer{writer: w}
}

// Bytes returns everything written so far. Only meaningful for a
// NewWriter-constructed buffer.
func (pb *PacketBuffer) Bytes() []byte {
	if pb.buf == nil {
		return nil
	}
	return pb.buf.Bytes()
}

// Len reports how many bytes have been written so far. Only meaningful for
// a NewWriter-constructed buffer.
func (pb *PacketBuffer) Len() int {
	if pb.buf == nil {
		return 0
	}
	return pb.buf.Len()
}

// Reset discards everything written so far, for reusing one buffer across
// multiple encodes. Only meaningful for a NewWriter-constructed buffer.
func (pb *PacketBuffer) Reset() {
	if pb.buf != nil {
		pb.buf.Reset()
	}
}

func (pb *PacketBuffer) Read(p []byte) (int, error) {
	if pb.reader == nil {
		return 0, fmt.Errorf("net_structures: buffer has no reader attached")
	}
	return io.ReadFull(pb.reader, p)
}

func (pb *PacketBuffer) Write(p []byte) (int, error) {
	if pb.writer == nil {
		return 0, fmt.Errorf("net_structures: buffer has no writer attached")
	}
	return pb.writer.Write(p)
}

func (pb *PacketBuffer) ReadByte() (byte, error) {
	var one [1]byte
	_, err := pb.Read(one[:])
	return one[0], err
}

func (pb *PacketBuffer) WriteByte(b byte) error {
	_, err := pb.Write([]byte{b})
	return err
}

// Reader exposes the raw io.Reader, for callers that need to hand the
// remaining stream to something else (e.g. an NBT reader).
func (pb *PacketBuffer) Reader() io.Reader { return pb.reader }

// Writer exposes the raw io.Writer, mirroring Reader.
func (pb *PacketBuffer) Writer() io.Writer { return pb.writer }

// readField decodes one value with decode, centralizing the reader-access
// pattern every ReadXxx method below shares.
func readField[T any](pb *PacketBuffer, decode func(io.Reader) (T, error)) (T, error) {
	return decode(pb.reader)
}

// encodable is satisfied by every wire primitive type in this package —
// each knows how to serialize itself given a destination writer.
type encodable interface {
	Encode(io.Writer) error
}

// writeField encodes one value against the buffer's writer, centralizing
// the writer-access pattern every WriteXxx method below shares.
func writeField[T encodable](pb *PacketBuffer, v T) error {
	return v.Encode(pb.writer)
}

func (pb *PacketBuffer) ReadVarInt() (VarInt, error)   { return readField(pb, DecodeVarInt) }
func (pb *PacketBuffer) WriteVarInt(v VarInt) error    { return writeField(pb, v) }
func (pb *PacketBuffer) ReadVarLong() (VarLong, error) { return readField(pb, DecodeVarLong) }
func (pb *PacketBuffer) WriteVarLong(v VarLong) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadBool() (Boolean, error) { return readField(pb, DecodeBoolean) }
func (pb *PacketBuffer) WriteBool(v Boolean) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadInt8() (Int8, error) { return readField(pb, DecodeInt8) }
func (pb *PacketBuffer) WriteInt8(v Int8) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadUint8() (Uint8, error) { return readField(pb, DecodeUint8) }
func (pb *PacketBuffer) WriteUint8(v Uint8) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadInt16() (Int16, error) { return readField(pb, DecodeInt16) }
func (pb *PacketBuffer) WriteInt16(v Int16) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadUint16() (Uint16, error) { return readField(pb, DecodeUint16) }
func (pb *PacketBuffer) WriteUint16(v Uint16) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadInt32() (Int32, error) { return readField(pb, DecodeInt32) }
func (pb *PacketBuffer) WriteInt32(v Int32) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadInt64() (Int64, error) { return readField(pb, DecodeInt64) }
func (pb *PacketBuffer) WriteInt64(v Int64) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadFloat32() (Float32, error) { return readField(pb, DecodeFloat32) }
func (pb *PacketBuffer) WriteFloat32(v Float32) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadFloat64() (Float64, error) { return readField(pb, DecodeFloat64) }
func (pb *PacketBuffer) WriteFloat64(v Float64) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadPosition() (Position, error) { return readField(pb, DecodePosition) }
func (pb *PacketBuffer) WritePosition(v Position) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadUUID() (UUID, error) { return readField(pb, DecodeUUID) }
func (pb *PacketBuffer) WriteUUID(v UUID) error  { return writeField(pb, v) }

func (pb *PacketBuffer) ReadAngle() (Angle, error) { return readField(pb, DecodeAngle) }
func (pb *PacketBuffer) WriteAngle(v Angle) error  { return writeField(pb, v) }

// ReadString reads a UTF-8 string with a VarInt length prefix. maxLen bounds
// the decoded character count (0 disables the check); the protocol uses
// this to reject strings a field is not meant to carry (e.g. chat vs. a
// 16-character player name) before allocating for them.
func (pb *PacketBuffer) ReadString(maxLen int) (String, error) {
	return DecodeString(pb.reader, maxLen)
}

func (pb *PacketBuffer) WriteString(v String) error { return writeField(pb, v) }

func (pb *PacketBuffer) ReadIdentifier() (Identifier, error) { return readField(pb, DecodeIdentifier) }
func (pb *PacketBuffer) WriteIdentifier(v Identifier) error  { return writeField(pb, v) }

// ReadByteArray reads a VarInt-length-prefixed byte array, rejecting a
// negative or over-limit length before allocating the slice.
func (pb *PacketBuffer) ReadByteArray(maxLen int) (ByteArray, error) {
	n, err := pb.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("byte array: length prefix: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("byte array: negative length %d", n)
	}
	if maxLen > 0 && int(n) > maxLen {
		return nil, fmt.Errorf("byte array: length %d exceeds limit %d", n, maxLen)
	}

	data := make([]byte, n)
	if _, err := pb.Read(data); err != nil {
		return nil, fmt.Errorf("byte array: body: %w", err)
	}
	return data, nil
}

// WriteByteArray writes v with a VarInt length prefix.
func (pb *PacketBuffer) WriteByteArray(v ByteArray) error {
	if err := pb.WriteVarInt(VarInt(len(v))); err != nil {
		return fmt.Errorf("byte array: length prefix: %w", err)
	}
	if _, err := pb.Write(v); err != nil {
		return fmt.Errorf("byte array: body: %w", err)
	}
	return nil
}

// ReadFixedByteArray reads exactly n bytes with no length prefix, for
// fields whose size is implied by context (a parent field, or "whatever is
// left in the packet").
func (pb *PacketBuffer) ReadFixedByteArray(n int) (ByteArray, error) {
	data := make([]byte, n)
	if _, err := pb.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFixedByteArray writes v verbatim with no length prefix.
func (pb *PacketBuffer) WriteFixedByteArray(v ByteArray) error {
	_, err := pb.Write(v)
	return err
}

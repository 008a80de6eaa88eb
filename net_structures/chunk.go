package net_structures

import (
	"encoding/binary"
	"fmt"

	"github.com/brackenfield/mcclient/nbt"
)

// ChunkData is the data portion of a chunk packet: a VarInt-keyed map of
// heightmap long-arrays (protocol 769's surface/motion-blocking maps), the
// section payload as an opaque byte blob (sections are unpacked lazily by
// world/chunk.go's PalettedContainer reader, not here), and the chunk's
// block entities.
//
//	Heightmaps (VarInt count + entries of VarInt key + VarInt len + longs)
//	Data        (VarInt length + raw bytes containing chunk sections)
//	BlockEntities (VarInt length + array of BlockEntity)
type ChunkData struct {
	Heightmaps    map[int32][]int64
	Data          []byte
	BlockEntities []BlockEntity
}

// BlockEntity is one block entity within a chunk: its position relative to
// the chunk's XZ origin, absolute Y, registry type, and NBT payload
// (excluding the x/y/z fields, which this struct already carries).
//
//	PackedXZ (byte) | Y (short) | Type (VarInt) | Data (NBT)
//
// PackedXZ packs relative X into the high nibble and Z into the low nibble.
type BlockEntity struct {
	PackedXZ Uint8
	Y        Int16
	Type     VarInt
	Data     nbt.Tag
}

func (b *BlockEntity) X() int { return int(b.PackedXZ >> 4) }
func (b *BlockEntity) Z() int { return int(b.PackedXZ & 15) }

func (b *BlockEntity) SetXZ(x, z int) {
	b.PackedXZ = Uint8(((x & 15) << 4) | (z & 15))
}

func readLongArray(buf *PacketBuffer, n int) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		raw, err := readBytes(buf, 8)
		if err != nil {
			return nil, fmt.Errorf("long %d: %w", i, err)
		}
		out[i] = int64(binary.BigEndian.Uint64(raw))
	}
	return out, nil
}

func writeLongArray(buf *PacketBuffer, vals []int64) error {
	for i, v := range vals {
		var raw [8]byte
		binary.BigEndian.PutUint64(raw[:], uint64(v))
		if err := writeBytes(buf, raw[:]); err != nil {
			return fmt.Errorf("long %d: %w", i, err)
		}
	}
	return nil
}

func (c *ChunkData) Decode(buf *PacketBuffer) error {
	hmCount, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("chunk data: heightmap count: %w", err)
	}
	c.Heightmaps = make(map[int32][]int64, hmCount)
	for i := 0; i < int(hmCount); i++ {
		key, err := buf.ReadVarInt()
		if err != nil {
			return fmt.Errorf("chunk data: heightmap %d key: %w", i, err)
		}
		arrLen, err := buf.ReadVarInt()
		if err != nil {
			return fmt.Errorf("chunk data: heightmap %d length: %w", i, err)
		}
		longs, err := readLongArray(buf, int(arrLen))
		if err != nil {
			return fmt.Errorf("chunk data: heightmap %d: %w", i, err)
		}
		c.Heightmaps[int32(key)] = longs
	}

	const maxChunkBytes = 2097152
	if c.Data, err = buf.ReadByteArray(maxChunkBytes); err != nil {
		return fmt.Errorf("chunk data: section bytes: %w", err)
	}

	beCount, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("chunk data: block entity count: %w", err)
	}
	c.BlockEntities = make([]BlockEntity, beCount)
	for i := range c.BlockEntities {
		if err := c.BlockEntities[i].Decode(buf); err != nil {
			return fmt.Errorf("chunk data: block entity %d: %w", i, err)
		}
	}
	return nil
}

func (c *ChunkData) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(VarInt(len(c.Heightmaps))); err != nil {
		return fmt.Errorf("chunk data: heightmap count: %w", err)
	}
	for key, longs := range c.Heightmaps {
		if err := buf.WriteVarInt(VarInt(key)); err != nil {
			return fmt.Errorf("chunk data: heightmap key: %w", err)
		}
		if err := buf.WriteVarInt(VarInt(len(longs))); err != nil {
			return fmt.Errorf("chunk data: heightmap length: %w", err)
		}
		if err := writeLongArray(buf, longs); err != nil {
			return fmt.Errorf("chunk data: heightmap: %w", err)
		}
	}

	if err := buf.WriteByteArray(c.Data); err != nil {
		return fmt.Errorf("chunk data: section bytes: %w", err)
	}

	if err := buf.WriteVarInt(VarInt(len(c.BlockEntities))); err != nil {
		return fmt.Errorf("chunk data: block entity count: %w", err)
	}
	for i := range c.BlockEntities {
		if err := c.BlockEntities[i].Encode(buf); err != nil {
			return fmt.Errorf("chunk data: block entity %d: %w", i, err)
		}
	}
	return nil
}

func (b *BlockEntity) Decode(buf *PacketBuffer) error {
	var err error
	if b.PackedXZ, err = buf.ReadUint8(); err != nil {
		return fmt.Errorf("block entity: packed xz: %w", err)
	}
	if b.Y, err = buf.ReadInt16(); err != nil {
		return fmt.Errorf("block entity: y: %w", err)
	}
	if b.Type, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("block entity: type: %w", err)
	}
	if b.Data, _, err = nbt.NewReaderFrom(buf.Reader()).ReadTag(true); err != nil {
		return fmt.Errorf("block entity: nbt: %w", err)
	}
	return nil
}

func (b *BlockEntity) Encode(buf *PacketBuffer) error {
	if err := buf.WriteUint8(b.PackedXZ); err != nil {
		return fmt.Errorf("block entity: packed xz: %w", err)
	}
	if err := buf.WriteInt16(b.Y); err != nil {
		return fmt.Errorf("block entity: y: %w", err)
	}
	if err := buf.WriteVarInt(b.Type); err != nil {
		return fmt.Errorf("block entity: type: %w", err)
	}
	payload := b.Data
	if payload == nil {
		payload = nbt.Compound{}
	}
	encoded, err := nbt.Encode(payload, "", true)
	if err != nil {
		return fmt.Errorf("block entity: nbt: %w", err)
	}
	if err := writeBytes(buf, encoded); err != nil {
		return fmt.Errorf("block entity: nbt: %w", err)
	}
	return nil
}

func (pb *PacketBuffer) ReadChunkData() (ChunkData, error) {
	var c ChunkData
	err := c.Decode(pb)
	return c, err
}

func (pb *PacketBuffer) WriteChunkData(c ChunkData) error { return c.Encode(pb) }

// LightData is a chunk's lighting update: four presence bitmasks (sky/block
// light present, sky/block light known-empty — one bit per section plus one
// above and one below the world) followed by the light arrays themselves,
// one 2048-byte nibble array per set bit in the matching present-mask.
//
//	SkyLightMask, BlockLightMask, EmptySkyLightMask, EmptyBlockLightMask (BitSet)
//	SkyLightArrays, BlockLightArrays (VarInt count + 2048-byte arrays)
type LightData struct {
	SkyLightMask        BitSet
	BlockLightMask      BitSet
	EmptySkyLightMask   BitSet
	EmptyBlockLightMask BitSet
	SkyLightArrays      [][]byte
	BlockLightArrays    [][]byte
}

const lightArraySize = 2048

func readLightArrays(buf *PacketBuffer) ([][]byte, error) {
	count, err := buf.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	arrays := make([][]byte, count)
	for i := range arrays {
		if arrays[i], err = buf.ReadByteArray(lightArraySize); err != nil {
			return nil, fmt.Errorf("array %d: %w", i, err)
		}
	}
	return arrays, nil
}

func writeLightArrays(buf *PacketBuffer, arrays [][]byte) error {
	if err := buf.WriteVarInt(VarInt(len(arrays))); err != nil {
		return fmt.Errorf("count: %w", err)
	}
	for i, arr := range arrays {
		if err := buf.WriteByteArray(arr); err != nil {
			return fmt.Errorf("array %d: %w", i, err)
		}
	}
	return nil
}

func (l *LightData) Decode(buf *PacketBuffer) error {
	masks := [...]*BitSet{&l.SkyLightMask, &l.BlockLightMask, &l.EmptySkyLightMask, &l.EmptyBlockLightMask}
	names := [...]string{"sky light mask", "block light mask", "empty sky light mask", "empty block light mask"}
	for i, m := range masks {
		if err := m.Decode(buf); err != nil {
			return fmt.Errorf("light data: %s: %w", names[i], err)
		}
	}

	var err error
	if l.SkyLightArrays, err = readLightArrays(buf); err != nil {
		return fmt.Errorf("light data: sky light arrays: %w", err)
	}
	if l.BlockLightArrays, err = readLightArrays(buf); err != nil {
		return fmt.Errorf("light data: block light arrays: %w", err)
	}
	return nil
}

func (l *LightData) Encode(buf *PacketBuffer) error {
	masks := [...]*BitSet{&l.SkyLightMask, &l.BlockLightMask, &l.EmptySkyLightMask, &l.EmptyBlockLightMask}
	names := [...]string{"sky light mask", "block light mask", "empty sky light mask", "empty block light mask"}
	for i, m := range masks {
		if err := m.Encode(buf); err != nil {
			return fmt.Errorf("light data: %s: %w", names[i], err)
		}
	}

	if err := writeLightArrays(buf, l.SkyLightArrays); err != nil {
		return fmt.Errorf("light data: sky light arrays: %w", err)
	}
	if err := writeLightArrays(buf, l.BlockLightArrays); err != nil {
		return fmt.Errorf("light data: block light arrays: %w", err)
	}
	return nil
}

func (pb *PacketBuffer) ReadLightData() (LightData, error) {
	var l LightData
	err := l.Decode(pb)
	return l, err
}

func (pb *PacketBuffer) WriteLightData(l LightData) error { return l.Encode(pb) }

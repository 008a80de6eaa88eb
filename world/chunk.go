// Package world holds the decoded chunk and entity state a session
// maintains as it receives CHUNK_DATA_AND_UPDATE_LIGHT, UNLOAD_CHUNK,
// BLOCK_UPDATE and entity-lifecycle PLAY packets.
package world

import (
	"fmt"

	ns "github.com/brackenfield/mcclient/net_structures"
)

// Dimension identifies which of the three vanilla dimensions a chunk belongs
// to, since the overworld has a taller section count and a y-offset the
// others don't.
type Dimension uint8

const (
	Overworld Dimension = iota
	Nether
	End
)

// sectionCount and yOffset follow spec.md §3: 24 sections (y in
// [-64, 320)) for the overworld, 16 elsewhere; blocks are indexed with
// y_with_offset = y+64 for the overworld, y otherwise.
func (d Dimension) sectionCount() int {
	if d == Overworld {
		return 24
	}
	return 16
}

func (d Dimension) yOffset() int {
	if d == Overworld {
		return 64
	}
	return 0
}

// Chunk is one decoded 16-wide, dimension-tall column of block-state ids.
type Chunk struct {
	X, Z      int32
	Dimension Dimension
	Heightmap [256]uint32
	Blocks    []uint32 // len = sectionCount()*16*16*16, indexed via BlockIndex
}

// NewChunk allocates a Chunk with its Blocks slice sized for dim.
func NewChunk(x, z int32, dim Dimension) *Chunk {
	n := dim.sectionCount() * 16 * 16 * 16
	return &Chunk{X: x, Z: z, Dimension: dim, Blocks: make([]uint32, n)}
}

// BlockIndex computes the flat index for a block at local (x, z) and
// absolute y, per spec.md §3: (y_with_offset, z_mod_16, x_mod_16).
func (c *Chunk) BlockIndex(x, y, z int) int {
	yWithOffset := y + c.Dimension.yOffset()
	return yWithOffset*256 + mod16(z)*16 + mod16(x)
}

func mod16(v int) int {
	m := v % 16
	if m < 0 {
		m += 16
	}
	return m
}

// BlockAt returns the block-state id at local (x, z) and absolute y.
func (c *Chunk) BlockAt(x, y, z int) uint32 {
	idx := c.BlockIndex(x, y, z)
	if idx < 0 || idx >= len(c.Blocks) {
		return 0
	}
	return c.Blocks[idx]
}

// SetBlockAt patches a single block in place (used by BLOCK_UPDATE).
func (c *Chunk) SetBlockAt(x, y, z int, stateID uint32) {
	idx := c.BlockIndex(x, y, z)
	if idx < 0 || idx >= len(c.Blocks) {
		return
	}
	c.Blocks[idx] = stateID
}

// DecodeSections parses the raw section bytes carried by ChunkData.Data
// (spec.md §4.1: each section is a block count, a block-states paletted
// container, and a biomes paletted container) and fills Blocks in place.
// Heightmap is left to the caller to populate from ChunkData.Heightmaps.
func (c *Chunk) DecodeSections(data []byte) error {
	buf := ns.NewReader(data)
	sections := c.Dimension.sectionCount()

	for s := range sections {
		if _, err := buf.ReadInt16(); err != nil { // block count, informational only
			return fmt.Errorf("section %d: failed to read block count: %w", s, err)
		}

		blockPC, err := ns.DecodeBlockPalettedContainer(buf)
		if err != nil {
			return fmt.Errorf("section %d: failed to decode block palette: %w", s, err)
		}
		if _, err := ns.DecodeBiomePalettedContainer(buf); err != nil {
			return fmt.Errorf("section %d: failed to decode biome palette: %w", s, err)
		}

		base := s * 16 * 16 * 16
		for i, v := range blockPC.Entries {
			c.Blocks[base+i] = uint32(v)
		}
	}
	return nil
}

// ApplyHeightmaps converts the raw VarInt-keyed long-array heightmaps into
// the flattened 16x16 u32 array spec.md §3 describes. Type 4
// (MOTION_BLOCKING) is preferred; falls back to whichever heightmap is
// present if MOTION_BLOCKING is absent.
func (c *Chunk) ApplyHeightmaps(raw map[int32][]int64) {
	const motionBlocking = 4
	longs, ok := raw[motionBlocking]
	if !ok {
		for _, v := range raw {
			longs = v
			break
		}
	}
	if longs == nil {
		return
	}

	const bitsPerEntry = 9
	const entriesPerLong = 64 / bitsPerEntry
	mask := uint64(1)<<bitsPerEntry - 1

	for i := range c.Heightmap {
		word := i / entriesPerLong
		slot := i % entriesPerLong
		if word >= len(longs) {
			break
		}
		c.Heightmap[i] = uint32((uint64(longs[word]) >> uint(slot*bitsPerEntry)) & mask)
	}
}

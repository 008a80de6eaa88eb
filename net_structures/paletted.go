package net_structures

import "fmt"

// PalettedContainer decodes and re-encodes the bit-packed block-state or
// biome volume found in each chunk section. Three shapes share one wire
// layout (bitsPerEntry byte, optional palette, VarInt-prefixed data array of
// u64 words):
//
//   - single-valued (bitsPerEntry == 0): the whole volume is one VarInt id,
//     no palette and an empty (VarInt 0) data array.
//   - indirect: a VarInt-length palette of VarInt global ids, then a data
//     array packing local palette indices.
//   - direct: no palette; the data array packs global ids directly.
//
// Entries are packed low-bits-first within each u64 word and never straddle
// a word boundary, so a word holds floor(64/bitsPerEntry) entries and any
// remaining high bits in the word are padding.
//
// See spec scenario: bpe=4, palette=[0,5,9], word 0x0000000000002100 holds
// the first 16 palette indices [0,0,1,2,0,0,0,0,0,0,0,0,0,0,0,0], so Entries
// begins [0,0,5,9,0,...].
type PalettedContainer struct {
	BitsPerEntry int
	// Palette holds the local-index -> global-id table. Empty for direct
	// containers (the entries themselves are already global ids).
	Palette []VarInt
	// Entries holds one resolved global id per volume cell, in section
	// iteration order (spec: (y, z, x) for blocks, matching index order).
	Entries []int32
}

// paletteShape describes the indirect/direct thresholds for one of the two
// container kinds the protocol defines.
type paletteShape struct {
	entries    int // volume size: 4096 for blocks, 64 for biomes
	indirectLo int
	indirectHi int
}

var blockPaletteShape = paletteShape{entries: 4096, indirectLo: 1, indirectHi: 8}
var biomePaletteShape = paletteShape{entries: 64, indirectLo: 1, indirectHi: 3}

// DecodeBlockPalettedContainer reads a 4096-entry block-state container.
func DecodeBlockPalettedContainer(buf *PacketBuffer) (*PalettedContainer, error) {
	return decodePalettedContainer(buf, blockPaletteShape)
}

// DecodeBiomePalettedContainer reads a 64-entry biome container.
func DecodeBiomePalettedContainer(buf *PacketBuffer) (*PalettedContainer, error) {
	return decodePalettedContainer(buf, biomePaletteShape)
}

func decodePalettedContainer(buf *PacketBuffer, shape paletteShape) (*PalettedContainer, error) {
	bpeByte, err := buf.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("failed to read bits per entry: %w", err)
	}
	bpe := int(bpeByte)

	pc := &PalettedContainer{BitsPerEntry: bpe}

	switch {
	case bpe == 0:
		val, err := buf.ReadVarInt()
		if err != nil {
			return nil, fmt.Errorf("failed to read single-valued entry: %w", err)
		}
		pc.Palette = []VarInt{val}
		if err := pc.readDataArray(buf, shape.entries, 0); err != nil {
			return nil, err
		}
		pc.Entries = make([]int32, shape.entries)
		for i := range pc.Entries {
			pc.Entries[i] = int32(val)
		}
		return pc, nil

	case bpe >= shape.indirectLo && bpe <= shape.indirectHi:
		paletteLen, err := buf.ReadVarInt()
		if err != nil {
			return nil, fmt.Errorf("failed to read palette length: %w", err)
		}
		pc.Palette = make([]VarInt, paletteLen)
		for i := range pc.Palette {
			pc.Palette[i], err = buf.ReadVarInt()
			if err != nil {
				return nil, fmt.Errorf("failed to read palette entry %d: %w", i, err)
			}
		}
		indices, err := pc.readPackedIndices(buf, shape.entries, bpe)
		if err != nil {
			return nil, err
		}
		pc.Entries = make([]int32, shape.entries)
		for i, idx := range indices {
			if int(idx) >= len(pc.Palette) {
				return nil, fmt.Errorf("palette index %d out of range (palette size %d)", idx, len(pc.Palette))
			}
			pc.Entries[i] = int32(pc.Palette[idx])
		}
		return pc, nil

	default:
		indices, err := pc.readPackedIndices(buf, shape.entries, bpe)
		if err != nil {
			return nil, err
		}
		pc.Entries = make([]int32, shape.entries)
		for i, idx := range indices {
			pc.Entries[i] = idx
		}
		return pc, nil
	}
}

// readDataArray reads and discards the VarInt-prefixed data array for the
// single-valued case, where the array is normally empty; a non-empty array
// is skipped word by word, not rejected.
func (pc *PalettedContainer) readDataArray(buf *PacketBuffer, numEntries, bpe int) error {
	length, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("failed to read data array length: %w", err)
	}
	for range int(length) {
		if _, err := buf.ReadInt64(); err != nil {
			return fmt.Errorf("failed to read data array word: %w", err)
		}
	}
	return nil
}

// readPackedIndices reads the VarInt-prefixed word array and unpacks
// numEntries fixed-width values, low bits first, never straddling a word.
func (pc *PalettedContainer) readPackedIndices(buf *PacketBuffer, numEntries, bpe int) ([]int32, error) {
	wordCount, err := buf.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("failed to read data array length: %w", err)
	}

	words := make([]uint64, wordCount)
	for i := range words {
		v, err := buf.ReadInt64()
		if err != nil {
			return nil, fmt.Errorf("failed to read data array word %d: %w", i, err)
		}
		words[i] = uint64(v)
	}

	perWord := 64 / bpe
	mask := uint64(1)<<uint(bpe) - 1

	entries := make([]int32, numEntries)
	for i := range entries {
		word := i / perWord
		slot := i % perWord
		if word >= len(words) {
			return nil, fmt.Errorf("data array too short: need word %d, have %d", word, len(words))
		}
		entries[i] = int32((words[word] >> uint(slot*bpe)) & mask)
	}
	return entries, nil
}

// EncodeBlockPalettedContainer writes a 4096-entry block-state container
// using the minimum indirect width that fits the distinct values present,
// or a direct container when there are more distinct values than an 8-bit
// indirect palette can index.
func EncodeBlockPalettedContainer(buf *PacketBuffer, entries []int32) error {
	return encodePalettedContainer(buf, entries, blockPaletteShape)
}

// EncodeBiomePalettedContainer writes a 64-entry biome container.
func EncodeBiomePalettedContainer(buf *PacketBuffer, entries []int32) error {
	return encodePalettedContainer(buf, entries, biomePaletteShape)
}

func encodePalettedContainer(buf *PacketBuffer, entries []int32, shape paletteShape) error {
	if len(entries) != shape.entries {
		return fmt.Errorf("expected %d entries, got %d", shape.entries, len(entries))
	}

	distinct := make([]int32, 0, 16)
	index := make(map[int32]int, 16)
	for _, v := range entries {
		if _, ok := index[v]; !ok {
			index[v] = len(distinct)
			distinct = append(distinct, v)
		}
	}

	if len(distinct) == 1 {
		if err := buf.WriteUint8(0); err != nil {
			return err
		}
		if err := buf.WriteVarInt(VarInt(distinct[0])); err != nil {
			return err
		}
		return buf.WriteVarInt(0)
	}

	bpe := bitsNeeded(len(distinct))
	if bpe < shape.indirectLo {
		bpe = shape.indirectLo
	}

	if bpe <= shape.indirectHi {
		if err := buf.WriteUint8(Uint8(bpe)); err != nil {
			return err
		}
		if err := buf.WriteVarInt(VarInt(len(distinct))); err != nil {
			return err
		}
		for _, v := range distinct {
			if err := buf.WriteVarInt(VarInt(v)); err != nil {
				return err
			}
		}
		indices := make([]int32, len(entries))
		for i, v := range entries {
			indices[i] = int32(index[v])
		}
		return writePackedIndices(buf, indices, bpe)
	}

	directBPE := bitsNeeded(int(maxOf(entries)) + 1)
	if directBPE < shape.indirectHi+1 {
		directBPE = shape.indirectHi + 1
	}
	if err := buf.WriteUint8(Uint8(directBPE)); err != nil {
		return err
	}
	return writePackedIndices(buf, entries, directBPE)
}

func writePackedIndices(buf *PacketBuffer, entries []int32, bpe int) error {
	perWord := 64 / bpe
	wordCount := (len(entries) + perWord - 1) / perWord
	words := make([]uint64, wordCount)
	mask := uint64(1)<<uint(bpe) - 1

	for i, v := range entries {
		word := i / perWord
		slot := i % perWord
		words[word] |= (uint64(v) & mask) << uint(slot*bpe)
	}

	if err := buf.WriteVarInt(VarInt(len(words))); err != nil {
		return err
	}
	for _, w := range words {
		if err := buf.WriteInt64(Int64(w)); err != nil {
			return err
		}
	}
	return nil
}

func bitsNeeded(n int) int {
	bits := 0
	for (1 << uint(bits)) < n {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

func maxOf(vs []int32) int32 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

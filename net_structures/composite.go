// Package-level composite wire shapes: arrays and optionals whose element
// type is supplied by the caller, and the three bit-set encodings the
// protocol uses for light masks, feature toggles, and registry references.
//
// See https://minecraft.wiki/w/Java_Edition_protocol/Data_types
package net_structures

import "fmt"

// decodeElem and encodeElem are the shapes PrefixedArray/PrefixedOptional
// need from a caller to read or write one T — unexported, since nothing
// outside this package names the type directly; any matching func literal
// satisfies them.
type decodeElem[T any] func(buf *PacketBuffer) (T, error)
type encodeElem[T any] func(buf *PacketBuffer, v T) error

// PrefixedArray is a VarInt-length-prefixed run of elements. The element
// codec isn't known to this package, so callers supply it per call:
//
//	var names PrefixedArray[String]
//	names.DecodeWith(buf, func(b *PacketBuffer) (String, error) { return b.ReadString(32767) })
type PrefixedArray[T any] []T

func (a *PrefixedArray[T]) DecodeWith(buf *PacketBuffer, decode decodeElem[T]) error {
	n, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("prefixed array: length: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("prefixed array: negative length %d", n)
	}

	elems := make([]T, n)
	for i := range elems {
		if elems[i], err = decode(buf); err != nil {
			return fmt.Errorf("prefixed array: element %d: %w", i, err)
		}
	}
	*a = elems
	return nil
}

func (a PrefixedArray[T]) EncodeWith(buf *PacketBuffer, encode encodeElem[T]) error {
	if err := buf.WriteVarInt(VarInt(len(a))); err != nil {
		return fmt.Errorf("prefixed array: length: %w", err)
	}
	for i, v := range a {
		if err := encode(buf, v); err != nil {
			return fmt.Errorf("prefixed array: element %d: %w", i, err)
		}
	}
	return nil
}

// Len reports the element count, mostly useful when T is itself a
// PrefixedArray or PrefixedOptional and len(a) reads awkwardly.
func (a PrefixedArray[T]) Len() int { return len(a) }

// PrefixedOptional is a Boolean-prefixed value: one presence byte, followed
// by the encoded value only when present is true.
type PrefixedOptional[T any] struct {
	Present bool
	Value   T
}

// Some wraps a present value.
func Some[T any](v T) PrefixedOptional[T] { return PrefixedOptional[T]{Present: true, Value: v} }

// None builds an absent optional of T.
func None[T any]() PrefixedOptional[T] { return PrefixedOptional[T]{} }

func (o *PrefixedOptional[T]) DecodeWith(buf *PacketBuffer, decode decodeElem[T]) error {
	present, err := buf.ReadBool()
	if err != nil {
		return fmt.Errorf("prefixed optional: presence: %w", err)
	}
	o.Present = bool(present)
	if !o.Present {
		return nil
	}
	if o.Value, err = decode(buf); err != nil {
		return fmt.Errorf("prefixed optional: value: %w", err)
	}
	return nil
}

func (o PrefixedOptional[T]) EncodeWith(buf *PacketBuffer, encode encodeElem[T]) error {
	if err := buf.WriteBool(Boolean(o.Present)); err != nil {
		return fmt.Errorf("prefixed optional: presence: %w", err)
	}
	if !o.Present {
		return nil
	}
	if err := encode(buf, o.Value); err != nil {
		return fmt.Errorf("prefixed optional: value: %w", err)
	}
	return nil
}

// Get returns the value alongside whether it was present, mirroring the
// comma-ok idiom for map lookups.
func (o PrefixedOptional[T]) Get() (T, bool) { return o.Value, o.Present }

// GetOrDefault returns the value if present, else fallback.
func (o PrefixedOptional[T]) GetOrDefault(fallback T) T {
	if o.Present {
		return o.Value
	}
	return fallback
}

// bitIndex splits a bit position into (word, bit-within-word) for a given
// word width, shared by BitSet's 64-bit words and FixedBitSet's bytes.
func bitIndex(i, wordBits int) (word, bit int) {
	return i / wordBits, i % wordBits
}

// BitSet is an open-ended bit set, wire-encoded as a VarInt word count
// followed by that many big-endian 64-bit words. Used for light masks and
// other per-section flags where the section count isn't fixed in advance.
type BitSet struct {
	words []int64
}

// NewBitSet allocates a BitSet able to address at least capacity bits.
func NewBitSet(capacity int) *BitSet {
	word, bit := bitIndex(capacity, 64)
	n := word
	if bit > 0 {
		n++
	}
	return &BitSet{words: make([]int64, n)}
}

// BitSetFromLongs builds a BitSet around a copy of an existing word slice.
func BitSetFromLongs(words []int64) *BitSet {
	return &BitSet{words: append([]int64(nil), words...)}
}

func (b *BitSet) Decode(buf *PacketBuffer) error {
	n, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("bitset: word count: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("bitset: negative word count %d", n)
	}

	words := make([]int64, n)
	for i := range words {
		v, err := buf.ReadInt64()
		if err != nil {
			return fmt.Errorf("bitset: word %d: %w", i, err)
		}
		words[i] = int64(v)
	}
	b.words = words
	return nil
}

func (b *BitSet) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(VarInt(len(b.words))); err != nil {
		return fmt.Errorf("bitset: word count: %w", err)
	}
	for i, v := range b.words {
		if err := buf.WriteInt64(Int64(v)); err != nil {
			return fmt.Errorf("bitset: word %d: %w", i, err)
		}
	}
	return nil
}

func (b *BitSet) Get(i int) bool {
	word, bit := bitIndex(i, 64)
	if i < 0 || word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<uint(bit)) != 0
}

// Set marks bit i, growing the backing slice if i falls past the current
// capacity (BitSet has no fixed size, unlike FixedBitSet).
func (b *BitSet) Set(i int) {
	if i < 0 {
		return
	}
	word, bit := bitIndex(i, 64)
	for len(b.words) <= word {
		b.words = append(b.words, 0)
	}
	b.words[word] |= 1 << uint(bit)
}

func (b *BitSet) Clear(i int) {
	word, bit := bitIndex(i, 64)
	if i < 0 || word >= len(b.words) {
		return
	}
	b.words[word] &^= 1 << uint(bit)
}

// Longs exposes the backing words directly, for callers building a BitSet
// field out of an already-assembled mask.
func (b *BitSet) Longs() []int64 { return b.words }

// FixedBitSet is a bit set whose size is fixed by its caller rather than
// self-described on the wire: ceil(n/8) bytes, no length prefix. Used where
// a sibling field (entity count, effect count) already tells the reader how
// many bits to expect.
type FixedBitSet struct {
	bytes []byte
	n     int
}

func NewFixedBitSet(n int) *FixedBitSet {
	return &FixedBitSet{bytes: make([]byte, (n+7)/8), n: n}
}

func FixedBitSetFromBytes(data []byte, n int) *FixedBitSet {
	return &FixedBitSet{bytes: append([]byte(nil), data...), n: n}
}

func (b *FixedBitSet) Decode(buf *PacketBuffer) error {
	data, err := buf.ReadFixedByteArray((b.n + 7) / 8)
	if err != nil {
		return fmt.Errorf("fixed bitset: %w", err)
	}
	b.bytes = data
	return nil
}

func (b *FixedBitSet) Encode(buf *PacketBuffer) error {
	return buf.WriteFixedByteArray(b.bytes)
}

func (b *FixedBitSet) Get(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	byteIdx, bit := bitIndex(i, 8)
	return b.bytes[byteIdx]&(1<<uint(bit)) != 0
}

func (b *FixedBitSet) Set(i int) {
	if i < 0 || i >= b.n {
		return
	}
	byteIdx, bit := bitIndex(i, 8)
	b.bytes[byteIdx] |= 1 << uint(bit)
}

func (b *FixedBitSet) Clear(i int) {
	if i < 0 || i >= b.n {
		return
	}
	byteIdx, bit := bitIndex(i, 8)
	b.bytes[byteIdx] &^= 1 << uint(bit)
}

func (b *FixedBitSet) Size() int    { return b.n }
func (b *FixedBitSet) Bytes() []byte { return b.bytes }

// IDSet names a set of registry IDs two ways: a reference to a data-pack tag
// (just the tag's identifier), or an inline VarInt list. The wire
// discriminator is a single VarInt: 0 means "tag follows", anything else is
// (count of inline IDs + 1).
type IDSet struct {
	IsTag   bool
	TagName Identifier
	IDs     []VarInt
}

func NewTagIDSet(tag Identifier) *IDSet { return &IDSet{IsTag: true, TagName: tag} }

func NewInlineIDSet(ids []VarInt) *IDSet { return &IDSet{IDs: ids} }

func (s *IDSet) Decode(buf *PacketBuffer) error {
	discriminator, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("id set: discriminator: %w", err)
	}

	if discriminator == 0 {
		s.IsTag = true
		s.IDs = nil
		if s.TagName, err = buf.ReadIdentifier(); err != nil {
			return fmt.Errorf("id set: tag name: %w", err)
		}
		return nil
	}

	s.IsTag = false
	ids := make([]VarInt, discriminator-1)
	for i := range ids {
		if ids[i], err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("id set: inline id %d: %w", i, err)
		}
	}
	s.IDs = ids
	return nil
}

func (s *IDSet) Encode(buf *PacketBuffer) error {
	if s.IsTag {
		if err := buf.WriteVarInt(0); err != nil {
			return fmt.Errorf("id set: discriminator: %w", err)
		}
		if err := buf.WriteIdentifier(s.TagName); err != nil {
			return fmt.Errorf("id set: tag name: %w", err)
		}
		return nil
	}

	if err := buf.WriteVarInt(VarInt(len(s.IDs) + 1)); err != nil {
		return fmt.Errorf("id set: discriminator: %w", err)
	}
	for i, id := range s.IDs {
		if err := buf.WriteVarInt(id); err != nil {
			return fmt.Errorf("id set: inline id %d: %w", i, err)
		}
	}
	return nil
}

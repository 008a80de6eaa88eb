package net_structures

import "fmt"

// HashedSlot is the C2S counterpart of Slot: a server echoing
// ContainerClick and similar inputs wants to confirm the client saw the
// item it claims to, without shipping the component payload both sides
// already agree on — so components are reduced to a CRC32C hash per type
// (added) or a bare type id (removed).
type HashedSlot struct {
	Present    bool
	ItemID     VarInt
	Count      VarInt
	Components HashedComponents
}

// HashedComponents is the add/remove patch map: Add pairs a component type
// with the hash of its value, Remove lists component types the slot no
// longer carries.
type HashedComponents struct {
	Add    []HashedComponent
	Remove []VarInt
}

type HashedComponent struct {
	ID   VarInt
	Hash Int32
}

func EmptyHashedSlot() HashedSlot { return HashedSlot{} }

func NewHashedSlot(itemID, count VarInt) HashedSlot {
	return HashedSlot{Present: true, ItemID: itemID, Count: count}
}

func (s *HashedSlot) IsEmpty() bool { return !s.Present }

func (s *HashedSlot) Decode(buf *PacketBuffer) error {
	present, err := buf.ReadBool()
	if err != nil {
		return fmt.Errorf("hashed slot: present: %w", err)
	}
	s.Present = bool(present)
	if !s.Present {
		return nil
	}

	if s.ItemID, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("hashed slot: item id: %w", err)
	}
	if s.Count, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("hashed slot: count: %w", err)
	}

	var add PrefixedArray[HashedComponent]
	if err := add.DecodeWith(buf, decodeHashedComponent); err != nil {
		return fmt.Errorf("hashed slot: added components: %w", err)
	}
	var remove PrefixedArray[VarInt]
	if err := remove.DecodeWith(buf, func(b *PacketBuffer) (VarInt, error) { return b.ReadVarInt() }); err != nil {
		return fmt.Errorf("hashed slot: removed components: %w", err)
	}
	s.Components = HashedComponents{Add: add, Remove: remove}
	return nil
}

func (s *HashedSlot) Encode(buf *PacketBuffer) error {
	if err := buf.WriteBool(Boolean(s.Present)); err != nil {
		return fmt.Errorf("hashed slot: present: %w", err)
	}
	if !s.Present {
		return nil
	}

	if err := buf.WriteVarInt(s.ItemID); err != nil {
		return fmt.Errorf("hashed slot: item id: %w", err)
	}
	if err := buf.WriteVarInt(s.Count); err != nil {
		return fmt.Errorf("hashed slot: count: %w", err)
	}

	add := PrefixedArray[HashedComponent](s.Components.Add)
	if err := add.EncodeWith(buf, encodeHashedComponent); err != nil {
		return fmt.Errorf("hashed slot: added components: %w", err)
	}
	remove := PrefixedArray[VarInt](s.Components.Remove)
	if err := remove.EncodeWith(buf, func(b *PacketBuffer, v VarInt) error { return b.WriteVarInt(v) }); err != nil {
		return fmt.Errorf("hashed slot: removed components: %w", err)
	}
	return nil
}

func decodeHashedComponent(buf *PacketBuffer) (HashedComponent, error) {
	id, err := buf.ReadVarInt()
	if err != nil {
		return HashedComponent{}, fmt.Errorf("id: %w", err)
	}
	hash, err := buf.ReadInt32()
	if err != nil {
		return HashedComponent{}, fmt.Errorf("hash: %w", err)
	}
	return HashedComponent{ID: id, Hash: hash}, nil
}

func encodeHashedComponent(buf *PacketBuffer, c HashedComponent) error {
	if err := buf.WriteVarInt(c.ID); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if err := buf.WriteInt32(c.Hash); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	return nil
}

func (pb *PacketBuffer) ReadHashedSlot() (HashedSlot, error) {
	var slot HashedSlot
	err := slot.Decode(pb)
	return slot, err
}

func (pb *PacketBuffer) WriteHashedSlot(s HashedSlot) error { return s.Encode(pb) }

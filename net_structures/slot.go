package net_structures

import "fmt"

// Slot is an item stack: a count, an item registry id, and a patch of
// data components (added ones carrying their own payload, removed ones
// named by type id only). Count <= 0 means the slot is empty and nothing
// else follows on the wire.
type Slot struct {
	Count      VarInt
	ItemID     VarInt
	Components SlotComponents
}

// SlotComponents is the add/remove component patch every non-empty Slot
// carries.
type SlotComponents struct {
	Add    []SlotComponent
	Remove []VarInt
}

// SlotComponent is implemented by every data-component type slot_components.go
// registers — CustomData, MaxStackSize, Damage, and the rest.
type SlotComponent interface {
	ComponentID() VarInt
	Encode(buf *PacketBuffer) error
	Decode(buf *PacketBuffer) error
}

func EmptySlot() Slot { return Slot{} }

func NewSlot(itemID, count VarInt) Slot { return Slot{Count: count, ItemID: itemID} }

func (s *Slot) IsEmpty() bool { return s.Count <= 0 }

func (s *Slot) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(s.Count); err != nil {
		return fmt.Errorf("slot: count: %w", err)
	}
	if s.Count <= 0 {
		return nil
	}

	if err := buf.WriteVarInt(s.ItemID); err != nil {
		return fmt.Errorf("slot: item id: %w", err)
	}
	if err := buf.WriteVarInt(VarInt(len(s.Components.Add))); err != nil {
		return fmt.Errorf("slot: add count: %w", err)
	}
	if err := buf.WriteVarInt(VarInt(len(s.Components.Remove))); err != nil {
		return fmt.Errorf("slot: remove count: %w", err)
	}

	for i, comp := range s.Components.Add {
		if err := buf.WriteVarInt(comp.ComponentID()); err != nil {
			return fmt.Errorf("slot: component %d id: %w", i, err)
		}
		if err := comp.Encode(buf); err != nil {
			return fmt.Errorf("slot: component %d data: %w", i, err)
		}
	}
	for i, id := range s.Components.Remove {
		if err := buf.WriteVarInt(id); err != nil {
			return fmt.Errorf("slot: removed id %d: %w", i, err)
		}
	}
	return nil
}

func (s *Slot) Decode(buf *PacketBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("slot: count: %w", err)
	}
	s.Count = count
	if s.Count <= 0 {
		return nil
	}

	if s.ItemID, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("slot: item id: %w", err)
	}
	addCount, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("slot: add count: %w", err)
	}
	removeCount, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("slot: remove count: %w", err)
	}

	// Added components are self-describing (id, then a type-specific
	// payload), so each must be read one at a time rather than through
	// PrefixedArray's single fixed-shape decoder.
	s.Components.Add = make([]SlotComponent, addCount)
	for i := range s.Components.Add {
		compID, err := buf.ReadVarInt()
		if err != nil {
			return fmt.Errorf("slot: component %d id: %w", i, err)
		}
		comp := NewSlotComponent(compID)
		if err := comp.Decode(buf); err != nil {
			return fmt.Errorf("slot: component %d (id=%d): %w", i, compID, err)
		}
		s.Components.Add[i] = comp
	}

	s.Components.Remove = make([]VarInt, removeCount)
	for i := range s.Components.Remove {
		if s.Components.Remove[i], err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("slot: removed id %d: %w", i, err)
		}
	}
	return nil
}

func (pb *PacketBuffer) ReadSlot() (Slot, error) {
	var slot Slot
	err := slot.Decode(pb)
	return slot, err
}

func (pb *PacketBuffer) WriteSlot(s Slot) error { return s.Encode(pb) }

// GetComponent returns the first added component with the given id, or nil.
func (s *Slot) GetComponent(id VarInt) SlotComponent {
	for _, comp := range s.Components.Add {
		if comp.ComponentID() == id {
			return comp
		}
	}
	return nil
}

func (s *Slot) AddComponent(comp SlotComponent) {
	s.Components.Add = append(s.Components.Add, comp)
}

func (s *Slot) RemoveComponent(id VarInt) {
	s.Components.Remove = append(s.Components.Remove, id)
}

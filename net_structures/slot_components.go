package net_structures

import (
	"fmt"

	"github.com/brackenfield/mcclient/nbt"
)

// Data component type IDs. See https://minecraft.wiki/w/Data_component_format.
const (
	ComponentCustomData      VarInt = 0
	ComponentMaxStackSize    VarInt = 1
	ComponentMaxDamage       VarInt = 2
	ComponentDamage          VarInt = 3
	ComponentUnbreakable     VarInt = 4
	ComponentCustomName      VarInt = 7
	ComponentItemName        VarInt = 8
	ComponentItemModel       VarInt = 9
	ComponentLore            VarInt = 10
	ComponentRarity          VarInt = 11
	ComponentEnchantments    VarInt = 12
	ComponentRepairCost      VarInt = 17
	ComponentDyedColor       VarInt = 26
	ComponentCustomModelData VarInt = 24
)

// componentFactory pairs a component ID with the zero-value constructor
// NewSlotComponent should use for it; componentDecoders (built from this
// table in init) is what actually gets consulted and mutated by
// RegisterComponentDecoder.
type componentFactory struct {
	id  VarInt
	new func() SlotComponent
}

var knownComponents = [...]componentFactory{
	{ComponentCustomData, func() SlotComponent { return &CustomDataComponent{} }},
	{ComponentMaxStackSize, func() SlotComponent { return &MaxStackSizeComponent{} }},
	{ComponentMaxDamage, func() SlotComponent { return &MaxDamageComponent{} }},
	{ComponentDamage, func() SlotComponent { return &DamageComponent{} }},
	{ComponentUnbreakable, func() SlotComponent { return &UnbreakableComponent{} }},
	{ComponentCustomName, func() SlotComponent { return &CustomNameComponent{} }},
	{ComponentItemName, func() SlotComponent { return &ItemNameComponent{} }},
	{ComponentLore, func() SlotComponent { return &LoreComponent{} }},
	{ComponentRarity, func() SlotComponent { return &RarityComponent{} }},
	{ComponentEnchantments, func() SlotComponent { return &EnchantmentsComponent{} }},
	{ComponentRepairCost, func() SlotComponent { return &RepairCostComponent{} }},
	{ComponentDyedColor, func() SlotComponent { return &DyedColorComponent{} }},
}

var componentDecoders map[VarInt]func() SlotComponent

func init() {
	componentDecoders = make(map[VarInt]func() SlotComponent, len(knownComponents))
	for _, c := range knownComponents {
		componentDecoders[c.id] = c.new
	}
}

// NewSlotComponent builds the zero value for a component ID, falling back to
// RawComponent for anything not registered.
func NewSlotComponent(id VarInt) SlotComponent {
	if factory, ok := componentDecoders[id]; ok {
		return factory()
	}
	return &RawComponent{ID: id}
}

// RegisterComponentDecoder adds or overrides the constructor used for id.
func RegisterComponentDecoder(id VarInt, factory func() SlotComponent) {
	componentDecoders[id] = factory
}

func decodeBoolField(buf *PacketBuffer) (bool, error) {
	v, err := buf.ReadBool()
	return bool(v), err
}

func encodeBoolField(buf *PacketBuffer, v bool) error { return buf.WriteBool(Boolean(v)) }

// RawComponent is the fallback for a component ID this module doesn't model:
// its payload is passed through opaquely rather than being parsed.
type RawComponent struct {
	ID   VarInt
	Data []byte
}

func (c *RawComponent) ComponentID() VarInt { return c.ID }

func (c *RawComponent) Encode(buf *PacketBuffer) error {
	_, err := buf.Write(c.Data)
	return err
}

// Decode can't know an unmodeled component's length without a prefix the
// wire format doesn't carry, so it reads nothing and leaves Data empty;
// CaptureRawComponent and DecodeSlotWithRawComponents do not recover those
// bytes either.
func (c *RawComponent) Decode(buf *PacketBuffer) error {
	c.Data = nil
	return nil
}

// CustomDataComponent holds arbitrary NBT attached to an item (ID 0).
type CustomDataComponent struct {
	Data nbt.Tag
}

func (*CustomDataComponent) ComponentID() VarInt { return ComponentCustomData }

func (c *CustomDataComponent) Encode(buf *PacketBuffer) error {
	payload := c.Data
	if payload == nil {
		payload = nbt.Compound{}
	}
	data, err := nbt.Encode(payload, "", true)
	if err != nil {
		return err
	}
	_, err = buf.Write(data)
	return err
}

func (c *CustomDataComponent) Decode(buf *PacketBuffer) error {
	tag, _, err := nbt.NewReaderFrom(buf.Reader()).ReadTag(true)
	if err != nil {
		return err
	}
	c.Data = tag
	return nil
}

// MaxStackSizeComponent overrides an item's maximum stack size (ID 1).
type MaxStackSizeComponent struct{ MaxStackSize VarInt }

func (*MaxStackSizeComponent) ComponentID() VarInt      { return ComponentMaxStackSize }
func (c *MaxStackSizeComponent) Encode(b *PacketBuffer) error { return b.WriteVarInt(c.MaxStackSize) }
func (c *MaxStackSizeComponent) Decode(b *PacketBuffer) error {
	v, err := b.ReadVarInt()
	c.MaxStackSize = v
	return err
}

// MaxDamageComponent sets an item's maximum damage/durability (ID 2).
type MaxDamageComponent struct{ MaxDamage VarInt }

func (*MaxDamageComponent) ComponentID() VarInt      { return ComponentMaxDamage }
func (c *MaxDamageComponent) Encode(b *PacketBuffer) error { return b.WriteVarInt(c.MaxDamage) }
func (c *MaxDamageComponent) Decode(b *PacketBuffer) error {
	v, err := b.ReadVarInt()
	c.MaxDamage = v
	return err
}

// DamageComponent holds an item's current damage (ID 3).
type DamageComponent struct{ Damage VarInt }

func (*DamageComponent) ComponentID() VarInt      { return ComponentDamage }
func (c *DamageComponent) Encode(b *PacketBuffer) error { return b.WriteVarInt(c.Damage) }
func (c *DamageComponent) Decode(b *PacketBuffer) error {
	v, err := b.ReadVarInt()
	c.Damage = v
	return err
}

// UnbreakableComponent marks an item as unbreakable (ID 4).
type UnbreakableComponent struct{ ShowInTooltip bool }

func (*UnbreakableComponent) ComponentID() VarInt { return ComponentUnbreakable }
func (c *UnbreakableComponent) Encode(b *PacketBuffer) error {
	return encodeBoolField(b, c.ShowInTooltip)
}
func (c *UnbreakableComponent) Decode(b *PacketBuffer) error {
	v, err := decodeBoolField(b)
	c.ShowInTooltip = v
	return err
}

// CustomNameComponent sets an item's custom display name (ID 7).
type CustomNameComponent struct{ Name TextComponent }

func (*CustomNameComponent) ComponentID() VarInt           { return ComponentCustomName }
func (c *CustomNameComponent) Encode(buf *PacketBuffer) error { return c.Name.Encode(buf) }
func (c *CustomNameComponent) Decode(buf *PacketBuffer) error { return c.Name.Decode(buf) }

// ItemNameComponent overrides the default (non-italicized) item name (ID 8).
type ItemNameComponent struct{ Name TextComponent }

func (*ItemNameComponent) ComponentID() VarInt           { return ComponentItemName }
func (c *ItemNameComponent) Encode(buf *PacketBuffer) error { return c.Name.Encode(buf) }
func (c *ItemNameComponent) Decode(buf *PacketBuffer) error { return c.Name.Decode(buf) }

// LoreComponent holds an item's lore lines (ID 10).
type LoreComponent struct{ Lines []TextComponent }

func (*LoreComponent) ComponentID() VarInt { return ComponentLore }

func (c *LoreComponent) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(VarInt(len(c.Lines))); err != nil {
		return err
	}
	for i, line := range c.Lines {
		if err := line.Encode(buf); err != nil {
			return fmt.Errorf("lore line %d: %w", i, err)
		}
	}
	return nil
}

func (c *LoreComponent) Decode(buf *PacketBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	c.Lines = make([]TextComponent, count)
	for i := range c.Lines {
		if err := c.Lines[i].Decode(buf); err != nil {
			return fmt.Errorf("lore line %d: %w", i, err)
		}
	}
	return nil
}

// Rarity values an item's RarityComponent may carry.
const (
	RarityCommon   VarInt = 0
	RarityUncommon VarInt = 1
	RarityRare     VarInt = 2
	RarityEpic     VarInt = 3
)

// RarityComponent sets an item's rarity tier (ID 11).
type RarityComponent struct{ Rarity VarInt }

func (*RarityComponent) ComponentID() VarInt      { return ComponentRarity }
func (c *RarityComponent) Encode(b *PacketBuffer) error { return b.WriteVarInt(c.Rarity) }
func (c *RarityComponent) Decode(b *PacketBuffer) error {
	v, err := b.ReadVarInt()
	c.Rarity = v
	return err
}

// EnchantmentsComponent holds an item's enchantments (ID 12).
type EnchantmentsComponent struct {
	Enchantments  map[VarInt]VarInt // enchantment id -> level
	ShowInTooltip bool
}

func (*EnchantmentsComponent) ComponentID() VarInt { return ComponentEnchantments }

func (c *EnchantmentsComponent) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(VarInt(len(c.Enchantments))); err != nil {
		return err
	}
	for id, level := range c.Enchantments {
		if err := buf.WriteVarInt(id); err != nil {
			return err
		}
		if err := buf.WriteVarInt(level); err != nil {
			return err
		}
	}
	return encodeBoolField(buf, c.ShowInTooltip)
}

func (c *EnchantmentsComponent) Decode(buf *PacketBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	c.Enchantments = make(map[VarInt]VarInt, count)
	for i := VarInt(0); i < count; i++ {
		id, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		level, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		c.Enchantments[id] = level
	}
	v, err := decodeBoolField(buf)
	c.ShowInTooltip = v
	return err
}

// RepairCostComponent holds an item's anvil repair cost (ID 17).
type RepairCostComponent struct{ Cost VarInt }

func (*RepairCostComponent) ComponentID() VarInt      { return ComponentRepairCost }
func (c *RepairCostComponent) Encode(b *PacketBuffer) error { return b.WriteVarInt(c.Cost) }
func (c *RepairCostComponent) Decode(b *PacketBuffer) error {
	v, err := b.ReadVarInt()
	c.Cost = v
	return err
}

// DyedColorComponent holds a leather armor piece's dye color (ID 26).
type DyedColorComponent struct {
	Color         Int32
	ShowInTooltip bool
}

func (*DyedColorComponent) ComponentID() VarInt { return ComponentDyedColor }

func (c *DyedColorComponent) Encode(buf *PacketBuffer) error {
	if err := buf.WriteInt32(c.Color); err != nil {
		return err
	}
	return encodeBoolField(buf, c.ShowInTooltip)
}

func (c *DyedColorComponent) Decode(buf *PacketBuffer) error {
	color, err := buf.ReadInt32()
	if err != nil {
		return err
	}
	c.Color = color
	v, err := decodeBoolField(buf)
	c.ShowInTooltip = v
	return err
}

// NewRawComponent wraps already-encoded bytes as a passthrough component,
// for proxying without fully parsing its payload.
func NewRawComponent(id VarInt, data []byte) *RawComponent {
	return &RawComponent{ID: id, Data: data}
}

func EncodeComponentToBytes(comp SlotComponent) ([]byte, error) {
	buf := NewWriter()
	if err := comp.Encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeComponentFromBytes(id VarInt, data []byte) (SlotComponent, error) {
	comp := NewSlotComponent(id)
	if err := comp.Decode(NewReader(data)); err != nil {
		return nil, err
	}
	return comp, nil
}

// CaptureRawComponent decodes a component and also returns its bytes as
// re-encoded from the decoded value (not a copy of the bytes read), for
// proxies that want to inspect a component and forward it. For an id with
// no registered decoder it reads nothing and returns the same empty
// RawComponent as both results.
func CaptureRawComponent(buf *PacketBuffer, id VarInt) (*RawComponent, SlotComponent, error) {
	comp := NewSlotComponent(id)
	if raw, ok := comp.(*RawComponent); ok {
		return raw, raw, nil
	}
	if err := comp.Decode(buf); err != nil {
		return nil, nil, err
	}
	data, err := EncodeComponentToBytes(comp)
	if err != nil {
		return nil, nil, err
	}
	return &RawComponent{ID: id, Data: data}, comp, nil
}

// DecodeSlotWithRawComponents decodes a slot the same way Slot.Decode does,
// but additionally returns each added component's bytes as
// CaptureRawComponent produces them, for proxies that forward components
// while inspecting them.
func DecodeSlotWithRawComponents(buf *PacketBuffer) (Slot, [][]byte, error) {
	var slot Slot

	count, err := buf.ReadVarInt()
	if err != nil {
		return slot, nil, fmt.Errorf("slot count: %w", err)
	}
	slot.Count = count
	if slot.Count <= 0 {
		return slot, nil, nil
	}

	if slot.ItemID, err = buf.ReadVarInt(); err != nil {
		return slot, nil, fmt.Errorf("slot item id: %w", err)
	}
	addCount, err := buf.ReadVarInt()
	if err != nil {
		return slot, nil, fmt.Errorf("slot add count: %w", err)
	}
	removeCount, err := buf.ReadVarInt()
	if err != nil {
		return slot, nil, fmt.Errorf("slot remove count: %w", err)
	}

	slot.Components.Add = make([]SlotComponent, addCount)
	rawData := make([][]byte, addCount)
	for i := range slot.Components.Add {
		compID, err := buf.ReadVarInt()
		if err != nil {
			return slot, nil, fmt.Errorf("component %d id: %w", i, err)
		}
		raw, comp, err := CaptureRawComponent(buf, compID)
		if err != nil {
			return slot, nil, fmt.Errorf("component %d: %w", i, err)
		}
		slot.Components.Add[i] = comp
		rawData[i] = raw.Data
	}

	slot.Components.Remove = make([]VarInt, removeCount)
	for i := range slot.Components.Remove {
		if slot.Components.Remove[i], err = buf.ReadVarInt(); err != nil {
			return slot, nil, fmt.Errorf("removed component %d id: %w", i, err)
		}
	}

	return slot, rawData, nil
}

package protocol

import ns "github.com/brackenfield/mcclient/net_structures"

// ClientInformation is "Client Information (configuration)" (serverbound,
// 0x00) — the client's locale/view-distance/chat settings, sent once on
// entering Configuration.
type ClientInformation struct {
	Locale              ns.String
	ViewDistance         ns.Int8
	ChatMode             ns.VarInt
	ChatColors           ns.Boolean
	DisplayedSkinParts   ns.Uint8
	MainHand             ns.VarInt
	EnableTextFiltering  ns.Boolean
	AllowServerListings  ns.Boolean
	ParticleStatus       ns.VarInt
}

func (p *ClientInformation) ID() ns.VarInt { return 0x00 }
func (p *ClientInformation) State() State  { return Configuration }
func (p *ClientInformation) Bound() Bound  { return Serverbound }

func (p *ClientInformation) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Locale, err = buf.ReadString(16); err != nil {
		return newError(Malformed, err, "client information: locale")
	}
	if p.ViewDistance, err = buf.ReadInt8(); err != nil {
		return newError(Malformed, err, "client information: view distance")
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "client information: chat mode")
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "client information: chat colors")
	}
	if p.DisplayedSkinParts, err = buf.ReadUint8(); err != nil {
		return newError(Malformed, err, "client information: skin parts")
	}
	if p.MainHand, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "client information: main hand")
	}
	if p.EnableTextFiltering, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "client information: text filtering")
	}
	if p.AllowServerListings, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "client information: server listings")
	}
	if p.ParticleStatus, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "client information: particle status")
	}
	return nil
}

func (p *ClientInformation) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Locale); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChatMode); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ChatColors); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.DisplayedSkinParts); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MainHand); err != nil {
		return err
	}
	if err := buf.WriteBool(p.EnableTextFiltering); err != nil {
		return err
	}
	if err := buf.WriteBool(p.AllowServerListings); err != nil {
		return err
	}
	return buf.WriteVarInt(p.ParticleStatus)
}

// ServerboundPluginMessage is "Serverbound Plugin Message (configuration)"
// (0x02). Data length is inferred from the enclosing packet's length, so it
// is read as "everything remaining" rather than a length-prefixed array.
type ServerboundPluginMessage struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

func (p *ServerboundPluginMessage) ID() ns.VarInt { return 0x02 }
func (p *ServerboundPluginMessage) State() State  { return Configuration }
func (p *ServerboundPluginMessage) Bound() Bound  { return Serverbound }

func (p *ServerboundPluginMessage) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return newError(Malformed, err, "plugin message: channel")
	}
	p.Data, err = readRemaining(buf)
	return err
}

func (p *ServerboundPluginMessage) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return err
	}
	return buf.WriteFixedByteArray(p.Data)
}

// ClientboundPluginMessage is "Clientbound Plugin Message (configuration)"
// (0x01). The session core-handler policy is to echo it straight back as a
// ServerboundPluginMessage with the same channel and payload.
type ClientboundPluginMessage struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

func (p *ClientboundPluginMessage) ID() ns.VarInt { return 0x01 }
func (p *ClientboundPluginMessage) State() State  { return Configuration }
func (p *ClientboundPluginMessage) Bound() Bound  { return Clientbound }

func (p *ClientboundPluginMessage) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return newError(Malformed, err, "plugin message (clientbound): channel")
	}
	p.Data, err = readRemaining(buf)
	return err
}

func (p *ClientboundPluginMessage) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "plugin message (clientbound): client never sends this packet")
}

// FinishConfiguration is "Finish Configuration" (clientbound, 0x03), no
// fields — signals the client to send AcknowledgeFinishConfiguration and
// move to Play.
type FinishConfiguration struct{}

func (p *FinishConfiguration) ID() ns.VarInt                    { return 0x03 }
func (p *FinishConfiguration) State() State                     { return Configuration }
func (p *FinishConfiguration) Bound() Bound                      { return Clientbound }
func (p *FinishConfiguration) Decode(buf *ns.PacketBuffer) error { return nil }
func (p *FinishConfiguration) Encode(buf *ns.PacketBuffer) error { return nil }

// AcknowledgeFinishConfiguration is the serverbound reply (0x03), no fields.
type AcknowledgeFinishConfiguration struct{}

func (p *AcknowledgeFinishConfiguration) ID() ns.VarInt                    { return 0x03 }
func (p *AcknowledgeFinishConfiguration) State() State                     { return Configuration }
func (p *AcknowledgeFinishConfiguration) Bound() Bound                      { return Serverbound }
func (p *AcknowledgeFinishConfiguration) Decode(buf *ns.PacketBuffer) error { return nil }
func (p *AcknowledgeFinishConfiguration) Encode(buf *ns.PacketBuffer) error { return nil }

// KeepAliveConfiguration (clientbound, 0x04) and its serverbound echo
// (0x04) carry an opaque 64-bit id the client must bounce back unmodified.
type KeepAliveConfiguration struct {
	ID_ ns.Int64
}

func (p *KeepAliveConfiguration) ID() ns.VarInt { return 0x04 }
func (p *KeepAliveConfiguration) State() State  { return Configuration }
func (p *KeepAliveConfiguration) Bound() Bound  { return Clientbound }

func (p *KeepAliveConfiguration) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt64()
	if err != nil {
		return newError(Malformed, err, "keep alive (configuration): id")
	}
	p.ID_ = v
	return nil
}

func (p *KeepAliveConfiguration) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.ID_)
}

type ServerboundKeepAliveConfiguration struct {
	ID_ ns.Int64
}

func (p *ServerboundKeepAliveConfiguration) ID() ns.VarInt { return 0x04 }
func (p *ServerboundKeepAliveConfiguration) State() State  { return Configuration }
func (p *ServerboundKeepAliveConfiguration) Bound() Bound  { return Serverbound }

func (p *ServerboundKeepAliveConfiguration) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadInt64()
	if err != nil {
		return newError(Malformed, err, "keep alive (configuration): id")
	}
	p.ID_ = v
	return nil
}

func (p *ServerboundKeepAliveConfiguration) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.ID_)
}

// KnownPack is one entry of the known-data-pack negotiation exchanged by
// SelectKnownPacks (both directions share the same shape; the packet ids
// differ).
type KnownPack struct {
	Namespace ns.String
	ID        ns.String
	Version   ns.String
}

// SelectKnownPacks negotiates which vanilla data packs each side already
// has, so the server can omit REGISTRY_DATA entries the client reports
// knowing. The serverbound and clientbound variants carry the same payload
// shape but different packet ids.
type SelectKnownPacks struct {
	packetID ns.VarInt
	Bound_   Bound
	Packs    []KnownPack
}

// NewSelectKnownPacksServerbound builds the serverbound reply to a
// clientbound SelectKnownPacks, carrying the same pack list back (the
// session's "echo" policy for this exchange).
func NewSelectKnownPacksServerbound(packs []KnownPack) *SelectKnownPacks {
	return &SelectKnownPacks{packetID: 0x07, Bound_: Serverbound, Packs: packs}
}

func (p *SelectKnownPacks) ID() ns.VarInt { return p.packetID }
func (p *SelectKnownPacks) State() State  { return Configuration }
func (p *SelectKnownPacks) Bound() Bound  { return p.Bound_ }

func (p *SelectKnownPacks) Decode(buf *ns.PacketBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "select known packs: count")
	}
	p.Packs = make([]KnownPack, count)
	for i := range p.Packs {
		if p.Packs[i].Namespace, err = buf.ReadString(32767); err != nil {
			return newError(Malformed, err, "select known packs: namespace")
		}
		if p.Packs[i].ID, err = buf.ReadString(32767); err != nil {
			return newError(Malformed, err, "select known packs: id")
		}
		if p.Packs[i].Version, err = buf.ReadString(32767); err != nil {
			return newError(Malformed, err, "select known packs: version")
		}
	}
	return nil
}

func (p *SelectKnownPacks) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(ns.VarInt(len(p.Packs))); err != nil {
		return err
	}
	for _, pack := range p.Packs {
		if err := buf.WriteString(pack.Namespace); err != nil {
			return err
		}
		if err := buf.WriteString(pack.ID); err != nil {
			return err
		}
		if err := buf.WriteString(pack.Version); err != nil {
			return err
		}
	}
	return nil
}

// opaqueConfig is the accept-and-ignore placeholder for REGISTRY_DATA,
// UPDATE_TAGS, and FEATURE_FLAGS: the session forwards these to the
// application unparsed (spec.md §4.4's "accept-and-ignore" behaviors) since
// decoding vanilla's full registry/tag data set is out of this module's
// scope. Fields are still captured as raw bytes rather than dropped, so a
// caller that wants them can decode further.
type opaqueConfig struct {
	packetID ns.VarInt
	name     string
	Raw      ns.ByteArray
}

func (p *opaqueConfig) ID() ns.VarInt { return p.packetID }
func (p *opaqueConfig) State() State  { return Configuration }
func (p *opaqueConfig) Bound() Bound  { return Clientbound }

func (p *opaqueConfig) Decode(buf *ns.PacketBuffer) error {
	raw, err := readRemaining(buf)
	if err != nil {
		return newError(Malformed, err, "%s: body", p.name)
	}
	p.Raw = raw
	return nil
}

func (p *opaqueConfig) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteFixedByteArray(p.Raw)
}

// readRemaining drains buf's reader to the end, used for fields whose
// length is implied by the enclosing packet length rather than an explicit
// prefix.
func readRemaining(buf *ns.PacketBuffer) (ns.ByteArray, error) {
	var out []byte
	chunk := make([]byte, 4096)
	for {
		n, err := buf.Reader().Read(chunk)
		if n > 0 {
			out = append(out, chunk[:n]...)
		}
		if err != nil {
			break
		}
	}
	return out, nil
}

func init() {
	Register("ClientInformation", Configuration, Serverbound, 0x00, func() Packet { return &ClientInformation{} })
	Register("ServerboundPluginMessage", Configuration, Serverbound, 0x02, func() Packet { return &ServerboundPluginMessage{} })
	Register("AcknowledgeFinishConfiguration", Configuration, Serverbound, 0x03, func() Packet { return &AcknowledgeFinishConfiguration{} })
	Register("ServerboundKeepAliveConfiguration", Configuration, Serverbound, 0x04, func() Packet { return &ServerboundKeepAliveConfiguration{} })
	Register("SelectKnownPacksServerbound", Configuration, Serverbound, 0x07, func() Packet { return &SelectKnownPacks{packetID: 0x07, Bound_: Serverbound} })

	Register("ClientboundPluginMessage", Configuration, Clientbound, 0x01, func() Packet { return &ClientboundPluginMessage{} })
	Register("FinishConfiguration", Configuration, Clientbound, 0x03, func() Packet { return &FinishConfiguration{} })
	Register("KeepAliveConfiguration", Configuration, Clientbound, 0x04, func() Packet { return &KeepAliveConfiguration{} })
	Register("RegistryData", Configuration, Clientbound, 0x07, func() Packet { return &opaqueConfig{packetID: 0x07, name: "registry data"} })
	Register("UpdateTags", Configuration, Clientbound, 0x0D, func() Packet { return &opaqueConfig{packetID: 0x0D, name: "update tags"} })
	Register("FeatureFlags", Configuration, Clientbound, 0x0C, func() Packet { return &opaqueConfig{packetID: 0x0C, name: "feature flags"} })
	Register("AddResourcePack", Configuration, Clientbound, 0x09, func() Packet { return &opaqueConfig{packetID: 0x09, name: "add resource pack"} })
	Register("SelectKnownPacksClientbound", Configuration, Clientbound, 0x0E, func() Packet { return &SelectKnownPacks{packetID: 0x0E, Bound_: Clientbound} })
}

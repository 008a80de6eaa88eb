package net_structures

import "fmt"

// ProfileProperty is one signed/unsigned key-value pair on a game profile —
// "textures" being the one every client cares about, carrying the skin/cape
// URLs base64'd into Value with an optional Mojang signature.
type ProfileProperty struct {
	Name      String
	Value     String
	Signature PrefixedOptional[String]
}

func decodeString64(b *PacketBuffer) (String, error)   { return b.ReadString(64) }
func decodeString16(b *PacketBuffer) (String, error)   { return b.ReadString(16) }
func decodeString1024(b *PacketBuffer) (String, error) { return b.ReadString(1024) }
func decodeStringUnbounded(b *PacketBuffer) (String, error) {
	return b.ReadString(32767)
}
func encodeString(b *PacketBuffer, v String) error { return b.WriteString(v) }

func decodeProfileProperty(b *PacketBuffer) (ProfileProperty, error) {
	var p ProfileProperty
	err := p.Decode(b)
	return p, err
}
func encodeProfileProperty(b *PacketBuffer, p ProfileProperty) error { return p.Encode(b) }

func (p *ProfileProperty) Decode(buf *PacketBuffer) error {
	var err error
	if p.Name, err = decodeString64(buf); err != nil {
		return fmt.Errorf("profile property: name: %w", err)
	}
	if p.Value, err = decodeStringUnbounded(buf); err != nil {
		return fmt.Errorf("profile property: value: %w", err)
	}
	if err := p.Signature.DecodeWith(buf, decodeString1024); err != nil {
		return fmt.Errorf("profile property: signature: %w", err)
	}
	return nil
}

func (p *ProfileProperty) Encode(buf *PacketBuffer) error {
	if err := buf.WriteString(p.Name); err != nil {
		return fmt.Errorf("profile property: name: %w", err)
	}
	if err := buf.WriteString(p.Value); err != nil {
		return fmt.Errorf("profile property: value: %w", err)
	}
	if err := p.Signature.EncodeWith(buf, encodeString); err != nil {
		return fmt.Errorf("profile property: signature: %w", err)
	}
	return nil
}

// GameProfile is UUID + username + property list, the shape LoginSuccess
// and player-info packets carry for a fully-resolved player.
type GameProfile struct {
	UUID       UUID
	Username   String
	Properties PrefixedArray[ProfileProperty]
}

func (p *GameProfile) Decode(buf *PacketBuffer) error {
	var err error
	if p.UUID, err = buf.ReadUUID(); err != nil {
		return fmt.Errorf("game profile: uuid: %w", err)
	}
	if p.Username, err = decodeString16(buf); err != nil {
		return fmt.Errorf("game profile: username: %w", err)
	}
	if err := p.Properties.DecodeWith(buf, decodeProfileProperty); err != nil {
		return fmt.Errorf("game profile: properties: %w", err)
	}
	return nil
}

func (p *GameProfile) Encode(buf *PacketBuffer) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return fmt.Errorf("game profile: uuid: %w", err)
	}
	if err := buf.WriteString(p.Username); err != nil {
		return fmt.Errorf("game profile: username: %w", err)
	}
	if err := p.Properties.EncodeWith(buf, encodeProfileProperty); err != nil {
		return fmt.Errorf("game profile: properties: %w", err)
	}
	return nil
}

func (pb *PacketBuffer) ReadGameProfile() (GameProfile, error) {
	var p GameProfile
	err := p.Decode(pb)
	return p, err
}

func (pb *PacketBuffer) WriteGameProfile(p GameProfile) error { return p.Encode(pb) }

// ResolvableProfileKind discriminates a ResolvableProfile's two shapes.
type ResolvableProfileKind VarInt

const (
	ProfilePartial  ResolvableProfileKind = 0
	ProfileComplete ResolvableProfileKind = 1
)

// ResolvableProfile is a profile reference that the server may send either
// partially resolved (bare name/UUID the client must look up) or fully
// resolved (a complete GameProfile plus optional player-model overrides),
// used by chat-signature and player-head-display packets.
type ResolvableProfile struct {
	Kind ResolvableProfileKind

	PartialUsername   PrefixedOptional[String]
	PartialUUID       PrefixedOptional[UUID]
	PartialProperties PrefixedOptional[PrefixedArray[ProfileProperty]]
	PartialSignature  PrefixedOptional[String]

	CompleteProfile GameProfile
	BodyModel       PrefixedOptional[Identifier]
	CapeModel       PrefixedOptional[Identifier]
	ElytraModel     PrefixedOptional[Identifier]
	SkinModel       PrefixedOptional[VarInt] // 0=wide, 1=slim
}

func NewPartialProfile() *ResolvableProfile { return &ResolvableProfile{Kind: ProfilePartial} }

func NewCompleteProfile(profile GameProfile) *ResolvableProfile {
	return &ResolvableProfile{Kind: ProfileComplete, CompleteProfile: profile}
}

func decodePropertyList(b *PacketBuffer) (PrefixedArray[ProfileProperty], error) {
	var props PrefixedArray[ProfileProperty]
	err := props.DecodeWith(b, decodeProfileProperty)
	return props, err
}

func encodePropertyList(b *PacketBuffer, props PrefixedArray[ProfileProperty]) error {
	return props.EncodeWith(b, encodeProfileProperty)
}

func decodeUUIDElem(b *PacketBuffer) (UUID, error)            { return b.ReadUUID() }
func decodeIdentifierElem(b *PacketBuffer) (Identifier, error) { return b.ReadIdentifier() }
func decodeVarIntElem(b *PacketBuffer) (VarInt, error)         { return b.ReadVarInt() }
func encodeUUIDElem(b *PacketBuffer, v UUID) error             { return b.WriteUUID(v) }
func encodeIdentifierElem(b *PacketBuffer, v Identifier) error { return b.WriteIdentifier(v) }
func encodeVarIntElem(b *PacketBuffer, v VarInt) error         { return b.WriteVarInt(v) }

func (p *ResolvableProfile) Decode(buf *PacketBuffer) error {
	kind, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("resolvable profile: kind: %w", err)
	}
	p.Kind = ResolvableProfileKind(kind)

	switch p.Kind {
	case ProfilePartial:
		if err := p.PartialUsername.DecodeWith(buf, decodeString16); err != nil {
			return fmt.Errorf("resolvable profile: partial username: %w", err)
		}
		if err := p.PartialUUID.DecodeWith(buf, decodeUUIDElem); err != nil {
			return fmt.Errorf("resolvable profile: partial uuid: %w", err)
		}
		if err := p.PartialProperties.DecodeWith(buf, decodePropertyList); err != nil {
			return fmt.Errorf("resolvable profile: partial properties: %w", err)
		}
		if err := p.PartialSignature.DecodeWith(buf, decodeString1024); err != nil {
			return fmt.Errorf("resolvable profile: partial signature: %w", err)
		}

	case ProfileComplete:
		if err := p.CompleteProfile.Decode(buf); err != nil {
			return fmt.Errorf("resolvable profile: complete profile: %w", err)
		}
		if err := p.BodyModel.DecodeWith(buf, decodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: body model: %w", err)
		}
		if err := p.CapeModel.DecodeWith(buf, decodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: cape model: %w", err)
		}
		if err := p.ElytraModel.DecodeWith(buf, decodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: elytra model: %w", err)
		}
		if err := p.SkinModel.DecodeWith(buf, decodeVarIntElem); err != nil {
			return fmt.Errorf("resolvable profile: skin model: %w", err)
		}

	default:
		return fmt.Errorf("resolvable profile: unknown kind %d", p.Kind)
	}
	return nil
}

func (p *ResolvableProfile) Encode(buf *PacketBuffer) error {
	if err := buf.WriteVarInt(VarInt(p.Kind)); err != nil {
		return fmt.Errorf("resolvable profile: kind: %w", err)
	}

	switch p.Kind {
	case ProfilePartial:
		if err := p.PartialUsername.EncodeWith(buf, encodeString); err != nil {
			return fmt.Errorf("resolvable profile: partial username: %w", err)
		}
		if err := p.PartialUUID.EncodeWith(buf, encodeUUIDElem); err != nil {
			return fmt.Errorf("resolvable profile: partial uuid: %w", err)
		}
		if err := p.PartialProperties.EncodeWith(buf, encodePropertyList); err != nil {
			return fmt.Errorf("resolvable profile: partial properties: %w", err)
		}
		if err := p.PartialSignature.EncodeWith(buf, encodeString); err != nil {
			return fmt.Errorf("resolvable profile: partial signature: %w", err)
		}

	case ProfileComplete:
		if err := p.CompleteProfile.Encode(buf); err != nil {
			return fmt.Errorf("resolvable profile: complete profile: %w", err)
		}
		if err := p.BodyModel.EncodeWith(buf, encodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: body model: %w", err)
		}
		if err := p.CapeModel.EncodeWith(buf, encodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: cape model: %w", err)
		}
		if err := p.ElytraModel.EncodeWith(buf, encodeIdentifierElem); err != nil {
			return fmt.Errorf("resolvable profile: elytra model: %w", err)
		}
		if err := p.SkinModel.EncodeWith(buf, encodeVarIntElem); err != nil {
			return fmt.Errorf("resolvable profile: skin model: %w", err)
		}

	default:
		return fmt.Errorf("resolvable profile: unknown kind %d", p.Kind)
	}
	return nil
}

func (pb *PacketBuffer) ReadResolvableProfile() (ResolvableProfile, error) {
	var p ResolvableProfile
	err := p.Decode(pb)
	return p, err
}

func (pb *PacketBuffer) WriteResolvableProfile(p ResolvableProfile) error { return p.Encode(pb) }

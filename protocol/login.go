package protocol

import ns "github.com/brackenfield/mcclient/net_structures"

// LoginStart is "Login Start" (serverbound/login, 0x00) — begins the login
// sequence with the player's chosen username. The UUID field is accepted
// but ignored by the vanilla server in offline mode.
type LoginStart struct {
	Name       ns.String
	PlayerUUID ns.UUID
}

func (p *LoginStart) ID() ns.VarInt { return 0x00 }
func (p *LoginStart) State() State  { return Login }
func (p *LoginStart) Bound() Bound  { return Serverbound }

func (p *LoginStart) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.Name, err = buf.ReadString(16); err != nil {
		return newError(Malformed, err, "login start: name")
	}
	if p.PlayerUUID, err = buf.ReadUUID(); err != nil {
		return newError(Malformed, err, "login start: uuid")
	}
	return nil
}

func (p *LoginStart) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Name); err != nil {
		return err
	}
	return buf.WriteUUID(p.PlayerUUID)
}

// LoginAcknowledged is "Login Acknowledged" (serverbound/login, 0x03), no
// fields. Sending it transitions the connection to Configuration.
type LoginAcknowledged struct{}

func (p *LoginAcknowledged) ID() ns.VarInt                    { return 0x03 }
func (p *LoginAcknowledged) State() State                     { return Login }
func (p *LoginAcknowledged) Bound() Bound                      { return Serverbound }
func (p *LoginAcknowledged) Decode(buf *ns.PacketBuffer) error { return nil }
func (p *LoginAcknowledged) Encode(buf *ns.PacketBuffer) error { return nil }

// DisconnectLogin is "Disconnect (login)" (clientbound/login, 0x00).
type DisconnectLogin struct {
	Reason ns.TextComponent
}

func (p *DisconnectLogin) ID() ns.VarInt { return 0x00 }
func (p *DisconnectLogin) State() State  { return Login }
func (p *DisconnectLogin) Bound() Bound  { return Clientbound }

func (p *DisconnectLogin) Decode(buf *ns.PacketBuffer) error {
	tc, err := buf.ReadTextComponent()
	if err != nil {
		return newError(Malformed, err, "disconnect (login): reason")
	}
	p.Reason = tc
	return nil
}

func (p *DisconnectLogin) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteTextComponent(p.Reason)
}

// EncryptionRequest is "Encryption Request" (clientbound/login, 0x01). This
// module's offline-mode session treats receiving this packet as a fatal
// condition (the Non-goal excludes the RSA shared-secret exchange) — it is
// still decoded so the session can report a clear error instead of a
// framing desync.
type EncryptionRequest struct {
	ServerID    ns.String
	PublicKey   ns.ByteArray
	VerifyToken ns.ByteArray
}

func (p *EncryptionRequest) ID() ns.VarInt { return 0x01 }
func (p *EncryptionRequest) State() State  { return Login }
func (p *EncryptionRequest) Bound() Bound  { return Clientbound }

func (p *EncryptionRequest) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.ServerID, err = buf.ReadString(20); err != nil {
		return newError(Malformed, err, "encryption request: server id")
	}
	if p.PublicKey, err = buf.ReadByteArray(0); err != nil {
		return newError(Malformed, err, "encryption request: public key")
	}
	if p.VerifyToken, err = buf.ReadByteArray(0); err != nil {
		return newError(Malformed, err, "encryption request: verify token")
	}
	return nil
}

func (p *EncryptionRequest) Encode(buf *ns.PacketBuffer) error {
	return newError(UnsupportedEncode, nil, "encryption request: client never sends this packet")
}

// LoginSuccess is "Login Success" (clientbound/login, 0x02) — carries the
// server-assigned GameProfile and switches the connection to awaiting
// LoginAcknowledged.
type LoginSuccess struct {
	Profile                  ns.GameProfile
	StrictErrorHandling      ns.Boolean
}

func (p *LoginSuccess) ID() ns.VarInt { return 0x02 }
func (p *LoginSuccess) State() State  { return Login }
func (p *LoginSuccess) Bound() Bound  { return Clientbound }

func (p *LoginSuccess) Decode(buf *ns.PacketBuffer) error {
	profile, err := buf.ReadGameProfile()
	if err != nil {
		return newError(Malformed, err, "login success: profile")
	}
	p.Profile = profile
	if p.StrictErrorHandling, err = buf.ReadBool(); err != nil {
		return newError(Malformed, err, "login success: strict error handling")
	}
	return nil
}

func (p *LoginSuccess) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteGameProfile(p.Profile); err != nil {
		return err
	}
	return buf.WriteBool(p.StrictErrorHandling)
}

// SetCompression is "Set Compression" (clientbound/login, 0x03). A negative
// Threshold disables compression.
type SetCompression struct {
	Threshold ns.VarInt
}

func (p *SetCompression) ID() ns.VarInt { return 0x03 }
func (p *SetCompression) State() State  { return Login }
func (p *SetCompression) Bound() Bound  { return Clientbound }

func (p *SetCompression) Decode(buf *ns.PacketBuffer) error {
	v, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "set compression: threshold")
	}
	p.Threshold = v
	return nil
}

func (p *SetCompression) Encode(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Threshold)
}

func init() {
	Register("LoginStart", Login, Serverbound, 0x00, func() Packet { return &LoginStart{} })
	Register("LoginAcknowledged", Login, Serverbound, 0x03, func() Packet { return &LoginAcknowledged{} })
	Register("DisconnectLogin", Login, Clientbound, 0x00, func() Packet { return &DisconnectLogin{} })
	Register("EncryptionRequest", Login, Clientbound, 0x01, func() Packet { return &EncryptionRequest{} })
	Register("LoginSuccess", Login, Clientbound, 0x02, func() Packet { return &LoginSuccess{} })
	Register("SetCompression", Login, Clientbound, 0x03, func() Packet { return &SetCompression{} })
}

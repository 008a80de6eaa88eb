package protocol

import ns "github.com/brackenfield/mcclient/net_structures"

// Intent is the target state a Handshake packet requests the server switch
// into.
type Intent ns.VarInt

const (
	IntentStatus Intent = iota + 1
	IntentLogin
	IntentTransfer
)

// Handshake is "Intention" (serverbound/handshaking, 0x00) — the very first
// packet sent on a new connection, before any framing compression or state
// other than Handshaking applies.
type Handshake struct {
	ProtocolVersion ns.VarInt
	ServerAddress   ns.String
	ServerPort      ns.Uint16
	NextState       Intent
}

func (p *Handshake) ID() ns.VarInt  { return 0x00 }
func (p *Handshake) State() State   { return Handshaking }
func (p *Handshake) Bound() Bound   { return Serverbound }

func (p *Handshake) Decode(buf *ns.PacketBuffer) error {
	var err error
	if p.ProtocolVersion, err = buf.ReadVarInt(); err != nil {
		return newError(Malformed, err, "handshake: protocol version")
	}
	if p.ServerAddress, err = buf.ReadString(255); err != nil {
		return newError(Malformed, err, "handshake: server address")
	}
	if p.ServerPort, err = buf.ReadUint16(); err != nil {
		return newError(Malformed, err, "handshake: server port")
	}
	nextState, err := buf.ReadVarInt()
	if err != nil {
		return newError(Malformed, err, "handshake: next state")
	}
	p.NextState = Intent(nextState)
	return nil
}

func (p *Handshake) Encode(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteString(p.ServerAddress); err != nil {
		return err
	}
	if err := buf.WriteUint16(p.ServerPort); err != nil {
		return err
	}
	return buf.WriteVarInt(ns.VarInt(p.NextState))
}

func init() {
	Register("Intention", Handshaking, Serverbound, 0x00, func() Packet { return &Handshake{} })
}

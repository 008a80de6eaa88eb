package protocol

import (
	"fmt"

	ns "github.com/brackenfield/mcclient/net_structures"
)

// State is the phase a connection is in. Not sent over the wire; both ends
// transition it implicitly on specific packets (Handshake, Login Success,
// Finish Configuration).
type State uint8

const (
	Handshaking State = iota
	Status
	Login
	Configuration
	Play
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "handshaking"
	case Status:
		return "status"
	case Login:
		return "login"
	case Configuration:
		return "configuration"
	case Play:
		return "play"
	default:
		return "unknown"
	}
}

// Bound is the direction a packet travels.
type Bound uint8

const (
	// Serverbound: client -> server.
	Serverbound Bound = iota
	// Clientbound: server -> client.
	Clientbound
)

// Packet is implemented by every typed packet this module declares. Decode
// and Encode both operate against the packet's own data (the packet ID has
// already been consumed by the framer/dispatcher).
type Packet interface {
	ID() ns.VarInt
	State() State
	Bound() Bound
	Decode(buf *ns.PacketBuffer) error
	Encode(buf *ns.PacketBuffer) error
}

// Descriptor is a registry entry: a factory for a zero-value Packet of a
// known (state, bound, id), plus a human name for logging.
type Descriptor struct {
	Name    string
	State   State
	Bound   Bound
	ID      ns.VarInt
	NewFunc func() Packet
}

// registryKey is the three-level lookup spec.md §4.2 calls for, flattened
// to a single map key since Go lacks nested-map sugar worth the clutter.
type registryKey struct {
	state State
	bound Bound
	id    ns.VarInt
}

var registry = make(map[registryKey]Descriptor)

// Register adds a packet type to the registry. Called from package init()
// functions in the packet catalog files (handshake.go, login.go,
// configuration.go, play.go). Panics on a duplicate (state, bound, id) —
// a programmer error caught at package init, not a runtime condition.
func Register(name string, state State, bound Bound, id ns.VarInt, newFunc func() Packet) {
	key := registryKey{state: state, bound: bound, id: id}
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("protocol: duplicate registration for %s/%s/0x%02X", state, boundString(bound), id))
	}
	registry[key] = Descriptor{Name: name, State: state, Bound: bound, ID: id, NewFunc: newFunc}
}

// Lookup resolves a (state, bound, id) triple to its descriptor. The second
// return value is false for unregistered ids — per spec.md §7 policy this
// is an UnknownPacketID condition to be logged and discarded, not fatal.
func Lookup(state State, bound Bound, id ns.VarInt) (Descriptor, bool) {
	d, ok := registry[registryKey{state: state, bound: bound, id: id}]
	return d, ok
}

func boundString(b Bound) string {
	if b == Clientbound {
		return "clientbound"
	}
	return "serverbound"
}

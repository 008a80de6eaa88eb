// Package protocol implements the Java Edition wire protocol: packet
// framing, the per-state packet registry, and the typed packet catalog a
// session dispatches against.
package protocol

import "fmt"

// Kind classifies a protocol-level failure so callers can decide whether to
// keep reading (TRUNCATED), tear down the connection (everything else that
// isn't DISCONNECTED), or just log and move on (unknown packet ID).
type Kind int

const (
	// Truncated means the framer has a partial packet buffered and needs
	// more bytes; callers must rewind to the saved boundary and retry once
	// more data arrives. Recoverable.
	Truncated Kind = iota
	// Overflow means a length-prefixed field (VarInt, string, array)
	// declared a size past its protocol maximum. Fatal.
	Overflow
	// Malformed means a field's bytes don't parse as their declared type
	// (an unknown tag on a tagged union, an invalid enum value). Fatal.
	Malformed
	// UnknownPacketID means the (state, bound, id) triple has no registry
	// entry. Per policy this is logged and the packet discarded, not fatal.
	UnknownPacketID
	// DecompressionFailed means zlib rejected a compressed packet body.
	// Fatal.
	DecompressionFailed
	// UnsupportedEncode means a caller asked to encode a packet/field this
	// module only ever decodes (a programmer error, not a wire error).
	UnsupportedEncode
	// Disconnected is not itself a failure: it's the terminal event
	// delivered to the application when the peer closes the connection or
	// sends a DISCONNECT packet.
	Disconnected
)

func (k Kind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case Overflow:
		return "overflow"
	case Malformed:
		return "malformed"
	case UnknownPacketID:
		return "unknown_packet_id"
	case DecompressionFailed:
		return "decompression_failed"
	case UnsupportedEncode:
		return "unsupported_encode"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Error is the single error type every package in this module returns for
// protocol-level failures, carrying a Kind so callers can switch on it
// instead of string-matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// newError builds an *Error, wrapping cause if given.
func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if e, ok := err.(*Error); ok {
		pe = e
	} else {
		return false
	}
	return pe.Kind == kind
}

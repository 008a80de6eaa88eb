package protocol

import (
	"bytes"
	"compress/zlib"
	"io"

	ns "github.com/brackenfield/mcclient/net_structures"
)

// DataPacket is one framed, decompressed packet pulled off the wire: a
// packet ID and its raw payload, not yet decoded into a typed Packet.
type DataPacket struct {
	ID   ns.VarInt
	Data []byte
}

// Framer is a restart-safe streaming packet accumulator. Unlike the
// synchronous read-one-packet-from-a-net.Conn approach, Framer never blocks:
// Feed appends whatever bytes arrived (however the caller chose to chunk
// them — one byte, one read() worth, or everything at once) and Next pulls
// as many complete packets as are currently buffered, leaving any trailing
// partial packet untouched for the next Feed.
//
// Internally this keeps only the bytes not yet consumed by a successful
// Next; a parse that finds too few bytes leaves them in place instead of
// consuming the partial data, so interleaving arbitrary partial writes and
// reads across Feed calls yields the same sequence of DataPackets as one
// big Feed would.
type Framer struct {
	pending              []byte // bytes not yet consumed by a successful Next
	compressionThreshold int    // < 0 disables compression
}

// NewFramer creates a Framer with compression disabled.
func NewFramer() *Framer {
	return &Framer{compressionThreshold: -1}
}

// SetCompressionThreshold enables (threshold >= 0) or disables (threshold <
// 0) compression framing, per SET_COMPRESSION.
func (f *Framer) SetCompressionThreshold(threshold int) {
	f.compressionThreshold = threshold
}

// Feed appends newly-received bytes to the accumulator.
func (f *Framer) Feed(data []byte) {
	f.pending = append(f.pending, data...)
}

// Next attempts to parse one complete packet from the accumulated bytes. It
// returns (nil, nil) when there isn't a full packet buffered yet, including
// when the length prefix itself is incomplete — this is not an error, just
// "call Feed again". Next never returns a Truncated error.
func (f *Framer) Next() (*DataPacket, error) {
	length, n, ok := decodeVarIntPrefix(f.pending)
	if !ok {
		return nil, nil
	}
	if length < 0 {
		return nil, newError(Overflow, nil, "negative packet length %d", length)
	}
	if int(length) > maxPacketSize {
		return nil, newError(Overflow, nil, "packet length %d exceeds maximum %d", length, maxPacketSize)
	}

	total := n + int(length)
	if len(f.pending) < total {
		return nil, nil // not enough bytes yet
	}

	body := f.pending[n:total]
	f.pending = f.pending[total:]

	if f.compressionThreshold >= 0 {
		return f.decodeCompressedBody(body)
	}
	return decodeUncompressedBody(body)
}

// maxPacketSize is the protocol's hard cap: packets cannot exceed
// (2^21)-1 bytes, the largest value a 3-byte VarInt can express.
const maxPacketSize = (1 << 21) - 1

func decodeVarIntPrefix(data []byte) (value int32, n int, ok bool) {
	var result int32
	for i := 0; i < 5 && i < len(data); i++ {
		b := data[i]
		result |= int32(b&0x7F) << uint(7*i)
		if b&0x80 == 0 {
			return result, i + 1, true
		}
	}
	return 0, 0, false
}

func decodeUncompressedBody(body []byte) (*DataPacket, error) {
	r := bytes.NewReader(body)
	id, err := ns.DecodeVarInt(r)
	if err != nil {
		return nil, newError(Malformed, err, "failed to read packet id")
	}
	rest, _ := io.ReadAll(r)
	return &DataPacket{ID: id, Data: rest}, nil
}

func (f *Framer) decodeCompressedBody(body []byte) (*DataPacket, error) {
	r := bytes.NewReader(body)
	dataLength, err := ns.DecodeVarInt(r)
	if err != nil {
		return nil, newError(Malformed, err, "failed to read data length")
	}

	// dataLength == 0 means this packet was sent uncompressed despite
	// compression being enabled (below the server's threshold).
	if dataLength == 0 {
		rest, _ := io.ReadAll(r)
		return decodeUncompressedBody(rest)
	}

	compressed, _ := io.ReadAll(r)
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, newError(DecompressionFailed, err, "failed to open zlib reader")
	}
	defer zr.Close()

	uncompressed, err := io.ReadAll(zr)
	if err != nil {
		return nil, newError(DecompressionFailed, err, "failed to inflate packet body")
	}

	return decodeUncompressedBody(uncompressed)
}

// Encode serializes a packet ID and payload into wire bytes, applying
// compression framing exactly as the vanilla server does: payloads at or
// above the threshold are zlib-compressed with a non-zero Data Length
// prefix; payloads below it are sent uncompressed with Data Length 0. When
// compression is disabled entirely, no Data Length field is written.
func (f *Framer) Encode(id ns.VarInt, payload []byte) ([]byte, error) {
	idBytes, err := id.ToBytes()
	if err != nil {
		return nil, newError(UnsupportedEncode, err, "failed to encode packet id")
	}
	uncompressed := append(append([]byte{}, idBytes...), payload...)

	if f.compressionThreshold < 0 {
		return prefixVarInt(len(uncompressed), uncompressed), nil
	}

	if len(uncompressed) >= f.compressionThreshold {
		var compressedBuf bytes.Buffer
		zw := zlib.NewWriter(&compressedBuf)
		if _, err := zw.Write(uncompressed); err != nil {
			return nil, newError(UnsupportedEncode, err, "failed to compress packet body")
		}
		if err := zw.Close(); err != nil {
			return nil, newError(UnsupportedEncode, err, "failed to close zlib writer")
		}

		dataLengthBytes, err := ns.VarInt(len(uncompressed)).ToBytes()
		if err != nil {
			return nil, newError(UnsupportedEncode, err, "failed to encode data length")
		}
		content := append(append([]byte{}, dataLengthBytes...), compressedBuf.Bytes()...)
		return prefixVarInt(len(content), content), nil
	}

	content := append([]byte{0x00}, uncompressed...)
	return prefixVarInt(len(content), content), nil
}

func prefixVarInt(length int, content []byte) []byte {
	lengthBytes, _ := ns.VarInt(length).ToBytes()
	return append(lengthBytes, content...)
}

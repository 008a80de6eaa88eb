package crypto

// CFB8 (8-bit cipher feedback) is the stream mode vanilla Minecraft uses to
// wrap the raw TCP stream once encryption is negotiated: each output byte
// feeds back into the shift register one byte at a time, rather than a full
// block at once like standard CFB.

import "crypto/cipher"

// Encrypt runs plaintext through CFB8 encryption with the given block
// cipher and IV, returning a ciphertext of the same length.
func Encrypt(block cipher.Block, iv, plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	newShiftRegister(block, iv, cfb8Encrypt).xor(out, plaintext)
	return out
}

// Decrypt runs ciphertext through CFB8 decryption with the given block
// cipher and IV, returning a plaintext of the same length.
func Decrypt(block cipher.Block, iv, ciphertext []byte) []byte {
	out := make([]byte, len(ciphertext))
	newShiftRegister(block, iv, cfb8Decrypt).xor(out, ciphertext)
	return out
}

// Stream adapts the shift register to cipher.Stream, for callers (such as
// crypto.Encryption) that want to hold onto one long-lived keystream rather
// than calling Encrypt/Decrypt per chunk.
type Stream struct{ reg *shiftRegister }

func (s *Stream) XORKeyStream(dst, src []byte) { s.reg.xor(dst, src) }

// NewEncryptStream returns a cipher.Stream that performs CFB8 encryption.
func NewEncryptStream(block cipher.Block, iv []byte) cipher.Stream {
	return &Stream{reg: newShiftRegister(block, iv, cfb8Encrypt)}
}

// NewDecryptStream returns a cipher.Stream that performs CFB8 decryption.
func NewDecryptStream(block cipher.Block, iv []byte) cipher.Stream {
	return &Stream{reg: newShiftRegister(block, iv, cfb8Decrypt)}
}

// cfb8Direction picks which byte gets fed back into the register: the
// ciphertext byte on decrypt, the freshly produced ciphertext byte on
// encrypt. Both directions otherwise share identical keystream generation.
type cfb8Direction bool

const (
	cfb8Encrypt cfb8Direction = false
	cfb8Decrypt cfb8Direction = true
)

// shiftRegister holds the rolling IV a CFB8 stream advances one byte at a
// time. register and scratch are both blockSize long; scratch exists so the
// shift (register[1:] -> register[:n-1]) doesn't alias its own source.
type shiftRegister struct {
	block     cipher.Block
	blockSize int
	register  []byte
	scratch   []byte
	dir       cfb8Direction
}

func newShiftRegister(block cipher.Block, iv []byte, dir cfb8Direction) *shiftRegister {
	register := make([]byte, len(iv))
	copy(register, iv)
	return &shiftRegister{
		block:     block,
		blockSize: block.BlockSize(),
		register:  register,
		scratch:   make([]byte, block.BlockSize()),
		dir:       dir,
	}
}

// xor produces len(src) bytes of keystream, one byte of block-cipher output
// at a time, and writes src[i] XOR keystream[i] into dst[i].
func (r *shiftRegister) xor(dst, src []byte) {
	for i, in := range src {
		copy(r.scratch, r.register)

		r.block.Encrypt(r.register, r.register)
		out := in ^ r.register[0]
		dst[i] = out

		copy(r.register, r.scratch[1:])
		if r.dir == cfb8Decrypt {
			r.register[r.blockSize-1] = in
		} else {
			r.register[r.blockSize-1] = out
		}
	}
}

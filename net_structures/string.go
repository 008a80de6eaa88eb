package net_structures

import (
	"fmt"
	"io"
	"strings"
)

// String is a UTF-8 string, VarInt-prefixed by its byte count (not its
// character count). Up to 32767 characters, which the UTF-8 worst case
// (4 bytes/char) bounds to 131068 bytes on the wire.
type String string

func (v String) Encode(w io.Writer) error {
	data := []byte(v)
	if err := VarInt(len(data)).Encode(w); err != nil {
		return fmt.Errorf("string: length prefix: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("string: body: %w", err)
	}
	return nil
}

// DecodeString reads a length-prefixed string, rejecting one whose
// character count exceeds maxLen (0 disables the check). The byte-length
// check against maxLen*4 rejects an oversized claim before the allocation
// for it, ahead of the exact rune count check after decoding.
func DecodeString(r io.Reader, maxLen int) (String, error) {
	n, err := DecodeVarInt(r)
	if err != nil {
		return "", fmt.Errorf("string: length prefix: %w", err)
	}
	if n < 0 {
		return "", fmt.Errorf("string: negative length %d", n)
	}
	if maxLen > 0 && int(n) > maxLen*4 {
		return "", fmt.Errorf("string: byte length %d exceeds %d-byte bound for %d chars", n, maxLen*4, maxLen)
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", fmt.Errorf("string: body: %w", err)
	}

	s := string(data)
	if maxLen > 0 {
		if chars := len([]rune(s)); chars > maxLen {
			return "", fmt.Errorf("string: %d characters exceeds maximum %d", chars, maxLen)
		}
	}
	return String(s), nil
}

// Identifier is a "namespace:path" resource location; a bare path with no
// colon implies the "minecraft" namespace. Both halves are restricted to
// lowercase letters/digits/underscore/hyphen/period, plus slashes in path —
// this package trusts well-formed input rather than validating the
// character set, since every identifier here originates from the server.
type Identifier string

func (v Identifier) Encode(w io.Writer) error { return String(v).Encode(w) }

func DecodeIdentifier(r io.Reader) (Identifier, error) {
	s, err := DecodeString(r, 32767)
	return Identifier(s), err
}

// Namespace returns the part before the colon, defaulting to "minecraft".
func (id Identifier) Namespace() string {
	if ns, _, ok := strings.Cut(string(id), ":"); ok {
		return ns
	}
	return "minecraft"
}

// Path returns the part after the colon, or the whole string if there is
// no colon.
func (id Identifier) Path() string {
	if _, path, ok := strings.Cut(string(id), ":"); ok {
		return path
	}
	return string(id)
}

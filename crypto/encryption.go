package crypto

// https://minecraft.wiki/w/Protocol_encryption
//
// Offline-mode sessions never perform the RSA shared-secret exchange that
// ENCRYPTION_REQUEST/ENCRYPTION_RESPONSE involve, so this type only retains
// the CFB8 passthrough: a session always carries one of these, and it is
// simply never enabled.

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

type Encryption struct {
	encryptStream cipher.Stream
	decryptStream cipher.Stream
	sharedSecret  []byte
}

func NewEncryption() *Encryption {
	return &Encryption{}
}

// SetSharedSecret installs a 16-byte AES key and enables CFB8 encryption.
// Unused on the offline-mode login path; kept so a future online-mode
// handshake has a single place to plug in the negotiated secret.
func (e *Encryption) SetSharedSecret(secret []byte) error {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return fmt.Errorf("failed to create AES cipher: %w", err)
	}

	e.sharedSecret = secret
	e.encryptStream = NewEncryptStream(block, secret)
	e.decryptStream = NewDecryptStream(block, secret)
	return nil
}

func (e *Encryption) Encrypt(data []byte) []byte {
	if e.encryptStream == nil {
		return data
	}
	encrypted := make([]byte, len(data))
	e.encryptStream.XORKeyStream(encrypted, data)
	return encrypted
}

func (e *Encryption) Decrypt(data []byte) []byte {
	if e.decryptStream == nil {
		return data
	}
	decrypted := make([]byte, len(data))
	e.decryptStream.XORKeyStream(decrypted, data)
	return decrypted
}

func (e *Encryption) IsEnabled() bool {
	return e.encryptStream != nil && e.decryptStream != nil
}

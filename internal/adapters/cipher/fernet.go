// Package cipher provides the field cipher for journal text at rest.
// Tokens are Fernet, so ciphertext written by earlier deployments stays
// readable.
package cipher

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Fernet implements domain.Cipher.
type Fernet struct {
	key *fernet.Key
}

// New builds a cipher from a base64-encoded 32-byte Fernet key.
func New(encodedKey string) (*Fernet, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decoding fernet key: %w", err)
	}
	return &Fernet{key: key}, nil
}

// NewRandom generates an ephemeral key. Ciphertext does not survive a
// restart; only suitable with the in-memory storage backend.
func NewRandom() (*Fernet, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("generating fernet key: %w", err)
	}
	return &Fernet{key: &key}, nil
}

func (f *Fernet) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), f.key)
	if err != nil {
		return "", fmt.Errorf("encrypting field: %w", err)
	}
	return string(tok), nil
}

// Decrypt returns the plaintext, or an empty string when the input is empty
// or not a token under this key. Callers treat an empty result as "nothing
// readable" so the UI never sees raw ciphertext.
func (f *Fernet) Decrypt(ciphertext string) string {
	if ciphertext == "" {
		return ""
	}
	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{f.key})
	if msg == nil {
		return ""
	}
	return string(msg)
}

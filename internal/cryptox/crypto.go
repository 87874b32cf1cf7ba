// Package cryptox holds the AES-GCM primitive and the argon2id key
// derivation shared by the envelope codec and the key service.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// NonceSize is the GCM standard nonce length in bytes.
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
)

var (
	// ErrSealedTooShort is returned by Open when the input cannot hold a
	// nonce and a tag.
	ErrSealedTooShort = errors.New("sealed data too short")
	// ErrOpenFailed is returned by Open when the tag does not verify.
	ErrOpenFailed = errors.New("message authentication failed")
)

// DeriveKey stretches password with argon2id into a KeySize key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under key and returns
// nonce || ciphertext || tag. A fresh random NonceSize nonce is drawn for
// every call. No associated data is authenticated.
//
// The key must be a valid AES key (16, 24 or 32 bytes).
func Seal(key, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. It returns ErrSealedTooShort without touching the
// cipher when sealed is shorter than NonceSize+TagSize, and ErrOpenFailed
// when authentication fails; no plaintext is returned in either case.
func Open(key, sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize+TagSize {
		return nil, ErrSealedTooShort
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}

	nonce, ciphertext := sealed[:NonceSize], sealed[NonceSize:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

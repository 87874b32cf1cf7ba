package envelope

import "github.com/dmitrijs2005/gophinventory/internal/cryptox"

// KeySize is the envelope key length in bytes (AES-256).
const KeySize = cryptox.KeySize

// Key is an AES-256 envelope key.
type Key [KeySize]byte

// DefaultPassphrase is the fixed passphrase of the legacy file format.
// Anyone holding the binary can read envelopes sealed with it.
const DefaultPassphrase = "MySuperSecretKeyForDemo123"

// LegacyKey turns a passphrase into a key the way the legacy format does:
// its UTF-8 bytes, truncated to KeySize or zero-padded up to it.
func LegacyKey(passphrase string) Key {
	var k Key
	copy(k[:], passphrase)
	return k
}

// DefaultKey is LegacyKey(DefaultPassphrase).
func DefaultKey() Key {
	return LegacyKey(DefaultPassphrase)
}

// DeriveKey stretches a passphrase with argon2id and the given salt.
func DeriveKey(passphrase, salt []byte) Key {
	var k Key
	copy(k[:], cryptox.DeriveKey(passphrase, salt))
	return k
}

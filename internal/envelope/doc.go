// Package envelope is the encrypted item file format.
//
// An envelope is the standard, padded Base64 encoding of
//
//	nonce (12 bytes) || AES-256-GCM ciphertext || tag (16 bytes)
//
// where the plaintext is the UTF-8 JSON form of a models.Item. A fresh
// random nonce is drawn for every Encode, so encoding the same item twice
// yields different text. No associated data is authenticated.
//
// Decode never returns a partially trusted item: it fails with
// ErrMalformedEnvelope before touching the cipher when the text is not
// Base64 or is too short, with ErrAuthenticationFailure when the tag does
// not verify (wrong key or tampered bytes), and with ErrInvalidPayload when
// the authenticated bytes are not an item. A successfully decoded item is
// always rewritten as new and imported: ID is models.UnsavedID and
// Provenance is models.ProvenanceImported.
//
// All functions are pure apart from the nonce draw and are safe for
// concurrent use.
package envelope

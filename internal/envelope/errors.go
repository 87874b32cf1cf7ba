package envelope

import "errors"

var (
	// ErrMalformedEnvelope means the text is not a structurally valid
	// envelope: bad Base64, or too short to hold a nonce and a tag.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrAuthenticationFailure means the GCM tag did not verify: the key is
	// wrong or the envelope was corrupted.
	ErrAuthenticationFailure = errors.New("envelope authentication failed")

	// ErrInvalidPayload means decryption succeeded but the plaintext is not
	// a serialized item.
	ErrInvalidPayload = errors.New("invalid envelope payload")

	// ErrEncodingFailure means the item could not be serialized or sealed.
	ErrEncodingFailure = errors.New("envelope encoding failed")
)

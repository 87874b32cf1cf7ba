package envelope

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/cryptox"
)

// MinSealedSize is the shortest decoded envelope: a nonce and a bare tag.
const MinSealedSize = cryptox.NonceSize + cryptox.TagSize

// SealText encrypts plain under key and returns the Base64 envelope text.
func SealText(plain []byte, key Key) (string, error) {
	sealed, err := cryptox.Seal(key[:], plain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenText decodes and authenticates envelope text and returns the
// plaintext bytes. ASCII whitespace anywhere in text is ignored.
func OpenText(text string, key Key) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(stripSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(raw) < MinSealedSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedEnvelope, len(raw), MinSealedSize)
	}

	plain, err := cryptox.Open(key[:], raw)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	return plain, nil
}

// Encode serializes item to JSON and seals it into envelope text.
func Encode(item models.Item, key Key) (string, error) {
	plain, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return SealText(plain, key)
}

// payload mirrors models.Item with pointers so absent required fields can
// be told apart from zero values.
type payload struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Quantity      *int     `json:"quantity"`
	SupplierName  *string  `json:"supplierName"`
	SupplierEmail *string  `json:"supplierEmail"`
	SupplierPhone *string  `json:"supplierPhone"`
}

// Decode opens envelope text and returns the item it carries, rewritten as
// a new imported item (see the package documentation).
func Decode(text string, key Key) (models.Item, error) {
	plain, err := OpenText(text, key)
	if err != nil {
		return models.Item{}, err
	}

	if !utf8.Valid(plain) {
		return models.Item{}, fmt.Errorf("%w: not UTF-8", ErrInvalidPayload)
	}

	p, err := parsePayload(plain)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch {
	case p.Name == nil || strings.TrimSpace(*p.Name) == "":
		return models.Item{}, fmt.Errorf("%w: name is missing", ErrInvalidPayload)
	case p.Price == nil:
		return models.Item{}, fmt.Errorf("%w: price is missing", ErrInvalidPayload)
	case p.Quantity == nil:
		return models.Item{}, fmt.Errorf("%w: quantity is missing", ErrInvalidPayload)
	case *p.Price < 0:
		return models.Item{}, fmt.Errorf("%w: negative price", ErrInvalidPayload)
	case *p.Quantity < 0:
		return models.Item{}, fmt.Errorf("%w: negative quantity", ErrInvalidPayload)
	case *p.Quantity > math.MaxInt32:
		return models.Item{}, fmt.Errorf("%w: quantity out of range", ErrInvalidPayload)
	}

	return models.Item{
		ID:            models.UnsavedID,
		Name:          *p.Name,
		Price:         *p.Price,
		Quantity:      *p.Quantity,
		SupplierName:  deref(p.SupplierName),
		SupplierEmail: deref(p.SupplierEmail),
		SupplierPhone: deref(p.SupplierPhone),
		Provenance:    models.ProvenanceImported,
	}, nil
}

// parsePayload matches keys exactly. encoding/json alone would also accept
// "NAME" or "Price" for the tagged fields.
func parsePayload(plain []byte) (payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(plain, &fields); err != nil {
		return payload{}, err
	}

	var p payload
	for key, dst := range map[string]any{
		"name":          &p.Name,
		"price":         &p.Price,
		"quantity":      &p.Quantity,
		"supplierName":  &p.SupplierName,
		"supplierEmail": &p.SupplierEmail,
		"supplierPhone": &p.SupplierPhone,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return payload{}, fmt.Errorf("field %s: %w", key, err)
		}
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}

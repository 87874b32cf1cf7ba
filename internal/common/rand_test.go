package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandByteArray_Length(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32} {
		assert.Len(t, GenerateRandByteArray(n), n)
	}
}

func TestGenerateRandByteArray_Differs(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	assert.NotEqual(t, a, b, "two 32-byte random draws should not collide")
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("passphrase")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, len("passphrase")), buf)

	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("sell item 7: %w", ErrOutOfStock)
	assert.True(t, errors.Is(err, ErrOutOfStock))
	assert.False(t, errors.Is(err, ErrorNotFound))
}

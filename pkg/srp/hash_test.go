package srp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeHash_Deterministic(t *testing.T) {
	p := testParams(t)

	h1, err := p.CompositeHash(big.NewInt(42), []byte("salt"), big.NewInt(7))
	require.NoError(t, err)
	h2, err := p.CompositeHash(big.NewInt(42), []byte("salt"), big.NewInt(7))
	require.NoError(t, err)

	assert.Equal(t, 0, h1.Cmp(h2))
}

func TestCompositeHash_PadsIntegers(t *testing.T) {
	p := testParams(t)

	// An integer input must hash identically to its explicit fixed-width
	// encoding, regardless of leading zero bytes in the minimal form.
	padded := make([]byte, p.KeyLength())
	padded[len(padded)-1] = 0x7F

	fromInt, err := p.CompositeHash(big.NewInt(0x7F))
	require.NoError(t, err)
	fromBytes, err := p.CompositeHash(padded)
	require.NoError(t, err)
	withLeadingZero, err := p.CompositeHash(new(big.Int).SetBytes([]byte{0x00, 0x7F}))
	require.NoError(t, err)

	assert.Equal(t, 0, fromInt.Cmp(fromBytes))
	assert.Equal(t, 0, fromInt.Cmp(withLeadingZero))
}

func TestCompositeHash_RawBytesUnpadded(t *testing.T) {
	p := testParams(t)

	// Byte-sequence inputs pass through unpadded, so a short slice and its
	// zero-extended form hash differently.
	short, err := p.CompositeHash([]byte{0x7F})
	require.NoError(t, err)
	extended, err := p.CompositeHash([]byte{0x00, 0x7F})
	require.NoError(t, err)

	assert.NotEqual(t, 0, short.Cmp(extended))
}

func TestCompositeHash_InvalidInputs(t *testing.T) {
	p := testParams(t)

	oversized := new(big.Int).Lsh(big.NewInt(1), uint(p.KeyLength()*8))

	tests := []struct {
		name   string
		inputs []any
	}{
		{"unsupported type", []any{42}},
		{"nil integer", []any{(*big.Int)(nil)}},
		{"nil byte slice", []any{[]byte(nil)}},
		{"value wider than group", []any{oversized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CompositeHash(tt.inputs...)
			assert.Error(t, err)
		})
	}
}

package srp

import (
	"fmt"
	"hash"
	"math/big"
)

// CompositeHash hashes an ordered list of heterogeneous inputs and returns
// the digest as a big integer. Each *big.Int input is serialized to the
// group's fixed byte width, left-padded with zero bytes; []byte inputs are
// written through unpadded. The padding rule is load-bearing: two peers
// that pad differently derive different secrets from identical values.
func (p *Params) CompositeHash(inputs ...any) (*big.Int, error) {
	digest, err := compositeDigest(p.newHash, p.byteLength, inputs...)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(digest), nil
}

// compositeDigest is CompositeHash without the big-integer reinterpretation,
// for callers that need the raw fixed-width digest.
func compositeDigest(newHash func() hash.Hash, padLen int, inputs ...any) ([]byte, error) {
	h := newHash()
	for i, in := range inputs {
		switch v := in.(type) {
		case *big.Int:
			if v == nil {
				return nil, fmt.Errorf("hash input %d is a nil integer", i)
			}
			padded, err := padBytes(v.Bytes(), padLen)
			if err != nil {
				return nil, fmt.Errorf("hash input %d: %w", i, err)
			}
			h.Write(padded)
		case []byte:
			if v == nil {
				return nil, fmt.Errorf("hash input %d is a nil byte slice", i)
			}
			h.Write(v)
		default:
			return nil, fmt.Errorf("hash input %d has unsupported type %T", i, in)
		}
	}
	return h.Sum(nil), nil
}

// padBytes left-pads src with zero bytes to exactly size bytes.
func padBytes(src []byte, size int) ([]byte, error) {
	if len(src) > size {
		return nil, fmt.Errorf("value of %d bytes exceeds fixed width %d", len(src), size)
	}
	dst := make([]byte, size)
	copy(dst[size-len(src):], src)
	return dst, nil
}

// digest hashes the concatenation of raw byte sequences with no padding.
func digest(newHash func() hash.Hash, inputs ...[]byte) []byte {
	h := newHash()
	for _, in := range inputs {
		h.Write(in)
	}
	return h.Sum(nil)
}

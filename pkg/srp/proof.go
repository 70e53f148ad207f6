package srp

import (
	"crypto/subtle"
	"fmt"
)

// ProofValidator computes and checks the two mutual proof values for a
// session whose key has been derived:
//
//	M1 = H(H(N) xor H(g) | H(I) | salt | PAD(A) | PAD(B) | K)
//	M2 = H(PAD(A) | M1 | K)
//
// The validator never mutates the session and never reveals the session
// key on a failed check; verification is a constant-time comparison.
type ProofValidator struct {
	session *Session
	m1      []byte
	m2      []byte
}

// ProofValidator returns a validator over this session. It fails with
// ErrKeyNotDerived if the session key has not been computed yet.
func (s *Session) ProofValidator() (*ProofValidator, error) {
	if s.key == nil {
		return nil, ErrKeyNotDerived
	}
	return &ProofValidator{session: s}, nil
}

// ClientProof returns M1, the proof the client sends first.
func (v *ProofValidator) ClientProof() ([]byte, error) {
	if v.m1 == nil {
		m1, err := v.computeM1()
		if err != nil {
			return nil, err
		}
		v.m1 = m1
	}
	out := make([]byte, len(v.m1))
	copy(out, v.m1)
	return out, nil
}

// ServerProof returns M2, the proof the server sends back after accepting
// the client's M1.
func (v *ProofValidator) ServerProof() ([]byte, error) {
	if v.m2 == nil {
		m1, err := v.ClientProof()
		if err != nil {
			return nil, err
		}
		s := v.session
		A, _ := s.clientServerEphemerals()
		paddedA, err := padBytes(A.Bytes(), s.params.keyLength)
		if err != nil {
			return nil, err
		}
		v.m2 = digest(s.params.newHash, paddedA, m1, s.key)
	}
	out := make([]byte, len(v.m2))
	copy(out, v.m2)
	return out, nil
}

// VerifyClientProof recomputes M1 locally and compares it against the
// peer-supplied value in constant time.
func (v *ProofValidator) VerifyClientProof(proof []byte) bool {
	expected, err := v.ClientProof()
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, proof) == 1
}

// VerifyServerProof recomputes M2 locally and compares it against the
// peer-supplied value in constant time.
func (v *ProofValidator) VerifyServerProof(proof []byte) bool {
	expected, err := v.ServerProof()
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, proof) == 1
}

// computeM1 assembles the client proof from the session's derived values.
func (v *ProofValidator) computeM1() ([]byte, error) {
	s := v.session
	if s.salt == nil {
		return nil, ErrSaltNotSet
	}

	p := s.params
	paddedN, err := padBytes(p.group.Prime.Bytes(), p.byteLength)
	if err != nil {
		return nil, err
	}
	paddedG, err := padBytes(p.group.Generator.Bytes(), p.byteLength)
	if err != nil {
		return nil, err
	}

	hN := digest(p.newHash, paddedN)
	hG := digest(p.newHash, paddedG)
	groupXOR := make([]byte, len(hN))
	for i := range hN {
		groupXOR[i] = hN[i] ^ hG[i]
	}

	hIdentity := digest(p.newHash, []byte(s.username))

	A, B := s.clientServerEphemerals()
	paddedA, err := padBytes(A.Bytes(), p.keyLength)
	if err != nil {
		return nil, err
	}
	paddedB, err := padBytes(B.Bytes(), p.keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to pad B: %w", err)
	}

	return digest(p.newHash, groupXOR, hIdentity, s.salt, paddedA, paddedB, s.key), nil
}

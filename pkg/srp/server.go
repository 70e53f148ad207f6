package srp

import (
	"fmt"
	"math/big"
)

// serverLogic implements the server half of the handshake: it owns B and
// derives the shared secret from the stored verifier.
type serverLogic struct{}

// NewServerSession creates a server-role session for one authentication
// attempt against a stored verifier. The private ephemeral secret b is
// drawn immediately. salt may be nil, in which case a fresh one must be
// produced with GenerateSalt before the handshake proceeds.
func NewServerSession(p *Params, username string, salt []byte, verifier *big.Int) (*Session, error) {
	if verifier == nil || verifier.Sign() <= 0 {
		return nil, fmt.Errorf("%w: verifier must be a positive integer", ErrEmptyCredentials)
	}
	s, err := newSession(p, RoleServer, serverLogic{}, username)
	if err != nil {
		return nil, err
	}
	if p.group.Prime.Cmp(verifier) <= 0 {
		return nil, fmt.Errorf("%w: verifier not reduced modulo N", ErrInvalidGroup)
	}
	s.verifier = verifier
	if salt != nil {
		if err := s.SetSalt(salt); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ownEphemeral computes B = (k*v + g^b) mod N.
func (serverLogic) ownEphemeral(s *Session) (*big.Int, error) {
	g, n, k := s.params.group.Generator, s.params.group.Prime, s.params.k

	kv := new(big.Int).Mul(k, s.verifier)
	kv.Mod(kv, n)

	B := new(big.Int).Exp(g, s.secret, n)
	B.Add(kv, B)
	B.Mod(B, n)

	if B.Sign() == 0 {
		return nil, ErrInvalidEphemeral
	}
	return B, nil
}

// rawSecret computes S = (A * v^u)^b mod N.
func (serverLogic) rawSecret(s *Session) (*big.Int, error) {
	n := s.params.group.Prime

	vu := new(big.Int).Exp(s.verifier, s.u, n)
	avu := new(big.Int).Mul(s.peerPub, vu)
	avu.Mod(avu, n)

	return new(big.Int).Exp(avu, s.secret, n), nil
}

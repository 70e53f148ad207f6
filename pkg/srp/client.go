package srp

import (
	"math/big"
)

// clientLogic implements the client half of the handshake: it owns A and
// derives the shared secret from the password.
type clientLogic struct{}

// NewClientSession creates a client-role session for one authentication
// attempt. The private ephemeral secret a is drawn immediately; the salt
// must be supplied via SetSalt once received from the server.
func NewClientSession(p *Params, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	s, err := newSession(p, RoleClient, clientLogic{}, username)
	if err != nil {
		return nil, err
	}
	s.password = foldCase(password, p.caseSensitive)
	return s, nil
}

// ownEphemeral computes A = g^a mod N.
func (clientLogic) ownEphemeral(s *Session) (*big.Int, error) {
	g, n := s.params.group.Generator, s.params.group.Prime
	A := new(big.Int).Exp(g, s.secret, n)
	if new(big.Int).Mod(A, n).Sign() == 0 {
		return nil, ErrInvalidEphemeral
	}
	return A, nil
}

// rawSecret computes S = (B - k*g^x)^(a + u*x) mod N.
func (clientLogic) rawSecret(s *Session) (*big.Int, error) {
	if s.salt == nil {
		return nil, ErrSaltNotSet
	}
	x, err := s.credentialsHash()
	if err != nil {
		return nil, err
	}

	g, n, k := s.params.group.Generator, s.params.group.Prime, s.params.k

	// base = B - k*g^x mod N
	kgx := new(big.Int).Exp(g, x, n)
	kgx.Mul(k, kgx)
	kgx.Mod(kgx, n)
	base := new(big.Int).Sub(s.peerPub, kgx)
	base.Mod(base, n)

	// exponent = a + u*x
	exponent := new(big.Int).Mul(s.u, x)
	exponent.Add(s.secret, exponent)

	return new(big.Int).Exp(base, exponent, n), nil
}

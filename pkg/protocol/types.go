// Package protocol defines the data structures and error codes shared by
// SRP clients and servers: the four handshake messages and their exact
// byte-width contracts. Transport framing is up to the embedding
// application; these types only fix what the two parties exchange.
package protocol

import (
	"encoding/base64"
	"fmt"

	"github.com/realmforge/srpauth/pkg/srp"
)

// HandshakeInit is the client's opening message: its identity and public
// ephemeral value A.
type HandshakeInit struct {
	Username string `json:"username"`
	A        string `json:"A"` // base64, key-length bytes, zero-padded
}

// HandshakeChallenge is the server's reply: the account salt and the
// server public ephemeral value B.
type HandshakeChallenge struct {
	Salt string `json:"salt"` // base64
	B    string `json:"B"`    // base64, key-length bytes, zero-padded
}

// HandshakeProof carries the client proof M1.
type HandshakeProof struct {
	M1 string `json:"M1"` // base64, hash-size bytes
}

// HandshakeConfirm carries the server proof M2, completing mutual
// authentication. The derived session key itself is never transmitted.
type HandshakeConfirm struct {
	M2 string `json:"M2"` // base64, hash-size bytes
}

// NewHandshakeInit builds the opening message from a client session.
func NewHandshakeInit(s *srp.Session) (*HandshakeInit, error) {
	if s.Role() != srp.RoleClient {
		return nil, srp.ErrWrongRole
	}
	a, err := s.PublicEphemeral()
	if err != nil {
		return nil, err
	}
	return &HandshakeInit{
		Username: s.Username(),
		A:        base64.StdEncoding.EncodeToString(a),
	}, nil
}

// NewHandshakeChallenge builds the server's reply from a server session,
// generating the salt if the account is new.
func NewHandshakeChallenge(s *srp.Session) (*HandshakeChallenge, error) {
	if s.Role() != srp.RoleServer {
		return nil, srp.ErrWrongRole
	}
	salt, err := s.Salt()
	if err != nil {
		salt, err = s.GenerateSalt()
		if err != nil {
			return nil, err
		}
	}
	b, err := s.PublicEphemeral()
	if err != nil {
		return nil, err
	}
	return &HandshakeChallenge{
		Salt: base64.StdEncoding.EncodeToString(salt),
		B:    base64.StdEncoding.EncodeToString(b),
	}, nil
}

// EphemeralValue decodes and width-checks the client ephemeral value.
func (m *HandshakeInit) EphemeralValue(p *srp.Params) ([]byte, error) {
	return decodeFixedWidth(m.A, p.KeyLength(), "A")
}

// Values decodes and width-checks the salt and server ephemeral value.
func (m *HandshakeChallenge) Values(p *srp.Params) (salt, b []byte, err error) {
	salt, err = base64.StdEncoding.DecodeString(m.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	if len(salt) == 0 {
		return nil, nil, fmt.Errorf("salt must be non-empty")
	}
	b, err = decodeFixedWidth(m.B, p.KeyLength(), "B")
	if err != nil {
		return nil, nil, err
	}
	return salt, b, nil
}

// Proof decodes and width-checks the client proof.
func (m *HandshakeProof) Proof(p *srp.Params) ([]byte, error) {
	return decodeFixedWidth(m.M1, p.HashSize(), "M1")
}

// Proof decodes and width-checks the server proof.
func (m *HandshakeConfirm) Proof(p *srp.Params) ([]byte, error) {
	return decodeFixedWidth(m.M2, p.HashSize(), "M2")
}

// decodeFixedWidth rejects values whose decoded length does not match the
// protocol's fixed width for that field. Short or long values are a peer
// implementation error, not something to pad over silently.
func decodeFixedWidth(encoded string, width int, field string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid %s encoding: %w", field, err)
	}
	if len(data) != width {
		return nil, fmt.Errorf("invalid %s length: got %d bytes, want %d", field, len(data), width)
	}
	return data, nil
}

package srp

import (
	"fmt"
	"hash"
	"math/big"
	"strings"
)

// Role identifies which side of the handshake a Session drives.
type Role int

// Session roles.
const (
	// RoleClient authenticates with a password.
	RoleClient Role = iota
	// RoleServer authenticates against a stored verifier.
	RoleServer
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

// roleLogic supplies the asymmetric half of the SRP computation. The shared
// state machine lives on Session; the two implementations differ only in
// how the own public ephemeral value and the raw shared secret are formed.
type roleLogic interface {
	ownEphemeral(s *Session) (*big.Int, error)
	rawSecret(s *Session) (*big.Int, error)
}

// Session holds the state of one authentication attempt for one role.
// A Session must not be reused across attempts: each login creates a fresh
// Session with a fresh private ephemeral secret. Operations are strictly
// ordered (salt, ephemerals, scrambling parameter, session key, proofs);
// out-of-order access returns a typed error instead of a silently wrong
// result. Sessions are not safe for concurrent use; the shared Params is.
type Session struct {
	params   *Params
	role     Role
	logic    roleLogic
	username string // case-folded per policy

	password string   // client role only
	verifier *big.Int // server role only

	secret  *big.Int // private ephemeral a (client) or b (server)
	salt    []byte
	x       *big.Int // credentials hash, computed lazily and cached
	ownPub  *big.Int // A for the client role, B for the server role
	peerPub *big.Int
	u       *big.Int // scrambling parameter H(PAD(A) | PAD(B))
	rawKey  *big.Int // shared secret S before key derivation
	key     []byte   // interleaved session key
	failure error    // protocol violation; poisons the session permanently
}

// newSession populates the state shared by both roles and draws the private
// ephemeral secret.
func newSession(p *Params, role Role, logic roleLogic, username string) (*Session, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidGroup)
	}
	if username == "" {
		return nil, ErrEmptyCredentials
	}

	secret, err := p.randomSecret()
	if err != nil {
		return nil, err
	}

	return &Session{
		params:   p,
		role:     role,
		logic:    logic,
		username: foldCase(username, p.caseSensitive),
		secret:   secret,
	}, nil
}

// Params returns the shared protocol parameters.
func (s *Session) Params() *Params {
	return s.params
}

// Role returns the session's role.
func (s *Session) Role() Role {
	return s.role
}

// Username returns the identity, case-folded per the parameters' policy.
func (s *Session) Username() string {
	return s.username
}

// Salt returns the salt for this attempt. Reading an unset salt is an
// ordering error; the server role populates it at construction or through
// GenerateSalt, the client role through SetSalt.
func (s *Session) Salt() ([]byte, error) {
	if s.salt == nil {
		return nil, ErrSaltNotSet
	}
	out := make([]byte, len(s.salt))
	copy(out, s.salt)
	return out, nil
}

// GenerateSalt draws a fresh key-length salt for a server session that was
// constructed without one. The salt is generated at most once; subsequent
// calls return the same value.
func (s *Session) GenerateSalt() ([]byte, error) {
	if s.role != RoleServer {
		return nil, fmt.Errorf("%w: only the server generates salts", ErrWrongRole)
	}
	if s.salt == nil {
		salt, err := s.params.GenerateSalt()
		if err != nil {
			return nil, err
		}
		s.salt = salt
	}
	return s.Salt()
}

// SetSalt records the salt received from the peer. It may be called exactly
// once, and only while the salt is unset.
func (s *Session) SetSalt(salt []byte) error {
	if s.salt != nil {
		return ErrSaltAlreadySet
	}
	if len(salt) == 0 {
		return fmt.Errorf("%w: empty salt", ErrSaltNotSet)
	}
	s.salt = make([]byte, len(salt))
	copy(s.salt, salt)
	return nil
}

// credentialsHash returns x = H(salt | H(username ":" password)), computed
// on first access and cached. Only the client role holds a password; the
// server role works from the stored verifier instead.
func (s *Session) credentialsHash() (*big.Int, error) {
	if s.x != nil {
		return s.x, nil
	}
	if s.role != RoleClient {
		return nil, fmt.Errorf("%w: server sessions hold a verifier, not a password", ErrWrongRole)
	}
	if s.salt == nil {
		return nil, ErrSaltNotSet
	}

	inner, err := credentialsDigest(s.params.newHash, s.username, s.password, true)
	if err != nil {
		return nil, err
	}
	x, err := s.params.CompositeHash(s.salt, inner)
	if err != nil {
		return nil, err
	}
	s.x = x
	return s.x, nil
}

// PublicEphemeral computes this side's public ephemeral value (A for the
// client, B for the server) once and returns it as a fixed-width,
// zero-padded byte sequence for transmission.
func (s *Session) PublicEphemeral() ([]byte, error) {
	pub, err := s.ownEphemeral()
	if err != nil {
		return nil, err
	}
	return padBytes(pub.Bytes(), s.params.keyLength)
}

func (s *Session) ownEphemeral() (*big.Int, error) {
	if s.ownPub == nil {
		pub, err := s.logic.ownEphemeral(s)
		if err != nil {
			return nil, err
		}
		s.ownPub = pub
	}
	return s.ownPub, nil
}

// SetPeerEphemeral records the peer's public ephemeral value (B for the
// client, A for the server) and computes the scrambling parameter
// u = H(PAD(A) | PAD(B)). A peer value congruent to zero modulo N and a
// zero scrambling parameter are both fatal protocol violations: they
// poison the session, and the attempt must be abandoned rather than
// retried with a fresh value.
func (s *Session) SetPeerEphemeral(data []byte) error {
	if s.failure != nil {
		return s.failure
	}
	if s.peerPub != nil {
		return ErrEphemeralAlreadySet
	}

	peer := new(big.Int).SetBytes(data)
	if new(big.Int).Mod(peer, s.params.group.Prime).Sign() == 0 {
		s.failure = ErrInvalidEphemeral
		return s.failure
	}

	if _, err := s.ownEphemeral(); err != nil {
		return err
	}
	s.peerPub = peer

	A, B := s.clientServerEphemerals()
	u, err := s.params.CompositeHash(A, B)
	if err != nil {
		s.peerPub = nil
		return err
	}
	if u.Sign() == 0 {
		s.peerPub = nil
		s.failure = ErrZeroScrambler
		return s.failure
	}
	s.u = u
	return nil
}

// clientServerEphemerals returns the two public ephemeral values in
// protocol order (A then B) regardless of which side owns which.
func (s *Session) clientServerEphemerals() (*big.Int, *big.Int) {
	if s.role == RoleClient {
		return s.ownPub, s.peerPub
	}
	return s.peerPub, s.ownPub
}

// SessionKey derives the final session key: the raw shared secret is
// computed by the role's formula, then its bytes are split into even- and
// odd-indexed halves, each half is hashed, and the two digests are
// interleaved byte by byte. The result is 2 x hash-size bytes long and is
// computed once per session.
func (s *Session) SessionKey() ([]byte, error) {
	if s.failure != nil {
		return nil, s.failure
	}
	if s.key == nil {
		if s.peerPub == nil || s.u == nil {
			return nil, ErrEphemeralNotSet
		}
		raw, err := s.logic.rawSecret(s)
		if err != nil {
			return nil, err
		}
		s.rawKey = raw
		s.key = interleavedKey(s.params.newHash, raw.Bytes())
	}
	out := make([]byte, len(s.key))
	copy(out, s.key)
	return out, nil
}

// interleavedKey hashes the even- and odd-indexed halves of the shared
// secret independently and interleaves the digests: output byte 2i comes
// from the even half's digest, byte 2i+1 from the odd half's. Leading zero
// bytes are stripped first, then one more byte if needed to make the length
// even, so both sides split identical byte sequences.
func interleavedKey(newHash func() hash.Hash, secret []byte) []byte {
	for len(secret) > 0 && secret[0] == 0 {
		secret = secret[1:]
	}
	if len(secret)%2 != 0 {
		secret = secret[1:]
	}

	half := len(secret) / 2
	even := make([]byte, 0, half)
	odd := make([]byte, 0, half)
	for i := 0; i+1 < len(secret); i += 2 {
		even = append(even, secret[i])
		odd = append(odd, secret[i+1])
	}

	evenDigest := digest(newHash, even)
	oddDigest := digest(newHash, odd)

	key := make([]byte, 2*len(evenDigest))
	for i := range evenDigest {
		key[2*i] = evenDigest[i]
		key[2*i+1] = oddDigest[i]
	}
	return key
}

// foldCase applies the case-sensitivity policy to an identity or password.
func foldCase(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToUpper(s)
}

// credentialsDigest returns H(username ":" password) with both parts folded
// per the case-sensitivity policy. This is the one-shot credential hash
// seeded into the verifier at account creation.
func credentialsDigest(newHash func() hash.Hash, username, password string, caseSensitive bool) ([]byte, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	identity := foldCase(username, caseSensitive) + ":" + foldCase(password, caseSensitive)
	return digest(newHash, []byte(identity)), nil
}

// GenerateCredentialsHash computes the one-way hash of username:password
// under the given case-sensitivity policy. It is a pure function of its
// inputs and is used at account-creation time, independent of any session.
func GenerateCredentialsHash(p *Params, username, password string, caseSensitive bool) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidGroup)
	}
	return credentialsDigest(p.newHash, username, password, caseSensitive)
}

// ComputeVerifier derives the verifier v = g^x mod N for the given salt and
// credentials, where x = H(salt | H(username ":" password)). The verifier
// is stored server-side in place of the password.
func ComputeVerifier(p *Params, username, password string, salt []byte) (*big.Int, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidGroup)
	}
	if len(salt) == 0 {
		return nil, ErrSaltNotSet
	}
	inner, err := credentialsDigest(p.newHash, username, password, p.caseSensitive)
	if err != nil {
		return nil, err
	}
	x, err := p.CompositeHash(salt, inner)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Exp(p.group.Generator, x, p.group.Prime), nil
}

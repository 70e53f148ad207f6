// Package srp implements the SRP-6a (Secure Remote Password) mutual
// authentication protocol. A client proves knowledge of a password and a
// server proves knowledge of the matching verifier without either party
// transmitting the password or a password-equivalent secret; on success
// both sides hold an identical session key.
//
// The group parameters, hash algorithm, and byte-layout rules follow
// RFC 5054, with the session key derived by hashing the even- and
// odd-indexed halves of the shared secret and interleaving the two
// digests (RFC 2945 style).
package srp

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"math/big"
)

// MinKeyLength is the smallest accepted key length (salt and ephemeral
// sizing) in bytes.
const MinKeyLength = 16

// primalityRounds is the number of Miller-Rabin rounds used to validate
// group primes at construction.
const primalityRounds = 20

// Group describes an SRP group: a large safe prime N and a generator g.
// The values must be identical on both sides of a handshake.
type Group struct {
	Name      string
	Prime     *big.Int
	Generator *big.Int
}

// Built-in groups from RFC 5054 Appendix A.
var (
	// Group1024 is the 1024-bit group (generator 2).
	Group1024 = &Group{
		Name:      "rfc5054.1024",
		Generator: big.NewInt(2),
		Prime: mustParsePrime(
			"EEAF0AB9ADB38DD69C33F80AFA8FC5E860726187" +
				"75FF3C0B9EA2314C9C256576D674DF7496EA81D3" +
				"383B4813D692C6E0E0D5D8E250B98BE48E495C1D" +
				"6089DAD15DC7D7B46154D6B6CE8EF4AD69B15D49" +
				"82559B297BCF1885C529F566660E57EC68EDBC3C" +
				"05726CC02FD4CBF4976EAA9AFD5138FE8376435B" +
				"9FC61D2FC0EB06E3"),
	}

	// Group2048 is the 2048-bit group (generator 2).
	Group2048 = &Group{
		Name:      "rfc5054.2048",
		Generator: big.NewInt(2),
		Prime: mustParsePrime(
			"AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050" +
				"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50" +
				"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8" +
				"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B" +
				"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748" +
				"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6" +
				"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6" +
				"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73"),
	}
)

// groups indexes the built-in groups by name.
var groups = map[string]*Group{
	Group1024.Name: Group1024,
	Group2048.Name: Group2048,
}

// LookupGroup returns a built-in group by name.
func LookupGroup(name string) (*Group, bool) {
	g, ok := groups[name]
	return g, ok
}

func mustParsePrime(hexN string) *big.Int {
	n, ok := new(big.Int).SetString(hexN, 16)
	if !ok {
		panic("srp: malformed built-in group prime")
	}
	return n
}

// hashes maps configuration names to hash constructors.
var hashes = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// Params holds the shared protocol parameters for SRP sessions: the group,
// the hash algorithm, the multiplier k = H(N | PAD(g)), the key length used
// to size salts and ephemeral secrets, and the case-sensitivity policy for
// identities. Params is immutable after construction and safe for
// unsynchronized use by any number of concurrent sessions.
type Params struct {
	group         *Group
	hashName      string
	newHash       func() hash.Hash
	byteLength    int // length of N in bytes; fixed width for padded values
	keyLength     int
	caseSensitive bool
	k             *big.Int
	random        io.Reader
}

// NewParams validates the group and policy and computes the multiplier k.
// The key length must equal the byte length of the group prime. Validation
// failures are configuration errors and wrap ErrInvalidGroup,
// ErrInvalidHash, or ErrInvalidKeyLength.
func NewParams(group *Group, hashName string, keyLength int, caseSensitive bool) (*Params, error) {
	if group == nil || group.Prime == nil || group.Generator == nil {
		return nil, fmt.Errorf("%w: group, prime, and generator must be set", ErrInvalidGroup)
	}

	newHash, ok := hashes[hashName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, hashName)
	}

	if err := validateGroup(group); err != nil {
		return nil, err
	}

	byteLength := (group.Prime.BitLen() + 7) / 8
	if keyLength < MinKeyLength || keyLength != byteLength {
		return nil, fmt.Errorf("%w: got %d, group requires %d", ErrInvalidKeyLength, keyLength, byteLength)
	}

	p := &Params{
		group:         group,
		hashName:      hashName,
		newHash:       newHash,
		byteLength:    byteLength,
		keyLength:     keyLength,
		caseSensitive: caseSensitive,
		random:        rand.Reader,
	}

	// k = H(N | PAD(g)), computed once and cached for the lifetime of
	// the parameters.
	k, err := p.CompositeHash(group.Prime, group.Generator)
	if err != nil {
		return nil, err
	}
	p.k = k

	return p, nil
}

// validateGroup checks that the prime is a safe prime of usable size and
// that the generator actually generates the group.
func validateGroup(g *Group) error {
	n := g.Prime
	if n.BitLen() < 512 {
		return fmt.Errorf("%w: prime must be at least 512 bits, got %d", ErrInvalidGroup, n.BitLen())
	}
	if !n.ProbablyPrime(primalityRounds) {
		return fmt.Errorf("%w: modulus is not prime", ErrInvalidGroup)
	}

	// Safe prime: q = (N-1)/2 must also be prime.
	q := new(big.Int).Rsh(n, 1)
	if !q.ProbablyPrime(primalityRounds) {
		return fmt.Errorf("%w: modulus is not a safe prime", ErrInvalidGroup)
	}

	two := big.NewInt(2)
	upper := new(big.Int).Sub(n, two)
	if g.Generator.Cmp(two) < 0 || g.Generator.Cmp(upper) > 0 {
		return fmt.Errorf("%w: generator out of range", ErrInvalidGroup)
	}

	// For a safe prime N = 2q+1, g generates the group iff
	// g^2 != 1 and g^q != 1 (mod N).
	one := big.NewInt(1)
	if new(big.Int).Exp(g.Generator, two, n).Cmp(one) == 0 ||
		new(big.Int).Exp(g.Generator, q, n).Cmp(one) == 0 {
		return fmt.Errorf("%w: generator does not generate the group", ErrInvalidGroup)
	}

	return nil
}

// Group returns the group description. Callers must treat it as read-only.
func (p *Params) Group() *Group {
	return p.group
}

// HashName returns the configured hash algorithm name.
func (p *Params) HashName() string {
	return p.hashName
}

// HashSize returns the output size of the configured hash in bytes.
func (p *Params) HashSize() int {
	return p.newHash().Size()
}

// KeyLength returns the byte length used for salts, ephemeral values, and
// other fixed-width wire values.
func (p *Params) KeyLength() int {
	return p.keyLength
}

// SessionKeyLength returns the length of a derived session key in bytes
// (twice the hash output size, due to the interleaved derivation).
func (p *Params) SessionKeyLength() int {
	return 2 * p.HashSize()
}

// CaseSensitive reports whether identities and passwords are used verbatim
// or case-folded before hashing.
func (p *Params) CaseSensitive() bool {
	return p.caseSensitive
}

// Multiplier returns k = H(N | PAD(g)). Callers must treat it as read-only.
func (p *Params) Multiplier() *big.Int {
	return p.k
}

// NormalizeIdentity applies the case-sensitivity policy to an identity.
// Registries must key accounts by the normalized form so lookups agree
// with the identity a session hashes.
func (p *Params) NormalizeIdentity(username string) string {
	return foldCase(username, p.caseSensitive)
}

// GenerateSalt draws a fresh key-length salt from the parameters' RNG.
func (p *Params) GenerateSalt() ([]byte, error) {
	return p.randomBytes(p.keyLength)
}

func (p *Params) randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.random, buf); err != nil {
		return nil, fmt.Errorf("failed to draw random bytes: %w", err)
	}
	return buf, nil
}

// randomSecret draws a fresh private ephemeral secret. The value is
// guaranteed nonzero.
func (p *Params) randomSecret() (*big.Int, error) {
	for {
		buf, err := p.randomBytes(p.keyLength)
		if err != nil {
			return nil, err
		}
		secret := new(big.Int).SetBytes(buf)
		if secret.Sign() != 0 {
			return secret, nil
		}
	}
}

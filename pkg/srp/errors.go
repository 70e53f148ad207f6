package srp

import "errors"

// Configuration errors, fatal at Params construction.
var (
	// ErrInvalidGroup indicates the group prime or generator is unusable.
	ErrInvalidGroup = errors.New("srp: invalid group parameters")
	// ErrInvalidHash indicates an unsupported hash algorithm name.
	ErrInvalidHash = errors.New("srp: unsupported hash algorithm")
	// ErrInvalidKeyLength indicates a key length inconsistent with the group size.
	ErrInvalidKeyLength = errors.New("srp: key length inconsistent with group size")
)

// Protocol violations, fatal to the current session only.
var (
	// ErrInvalidEphemeral indicates a peer public ephemeral value that is
	// zero modulo N. Accepting such a value would let the peer force a
	// known shared secret.
	ErrInvalidEphemeral = errors.New("srp: peer ephemeral value is zero modulo N")
	// ErrZeroScrambler indicates the scrambling parameter u = H(A | B)
	// evaluated to zero, which would nullify one side's contribution.
	ErrZeroScrambler = errors.New("srp: scrambling parameter is zero")
	// ErrSaltNotSet is returned when the salt is read before it has been
	// supplied or generated.
	ErrSaltNotSet = errors.New("srp: salt has not been set")
	// ErrSaltAlreadySet is returned when a salt would be populated twice.
	ErrSaltAlreadySet = errors.New("srp: salt has already been set")
	// ErrEphemeralNotSet is returned when an operation requires the peer
	// public ephemeral value before it has been supplied.
	ErrEphemeralNotSet = errors.New("srp: peer ephemeral value has not been set")
	// ErrEphemeralAlreadySet is returned when the peer public ephemeral
	// value would be populated twice.
	ErrEphemeralAlreadySet = errors.New("srp: peer ephemeral value has already been set")
	// ErrKeyNotDerived is returned when proofs are requested before the
	// session key has been derived.
	ErrKeyNotDerived = errors.New("srp: session key has not been derived")
	// ErrWrongRole is returned when an operation is invoked on a session
	// whose role does not support it.
	ErrWrongRole = errors.New("srp: operation not valid for this role")
)

// Input validation errors.
var (
	// ErrEmptyCredentials is returned when a username or password is empty.
	ErrEmptyCredentials = errors.New("srp: username and password must be non-empty")
)

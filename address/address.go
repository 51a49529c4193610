package address

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultAmount is the balance every new Address starts with.
	DefaultAmount uint64 = 0

	PublicKeyLength  = ed25519.PublicKeySize
	PrivateKeyLength = ed25519.PrivateKeySize
	PublicIDLength   = 32
)

var (
	ErrEnvironmentFailure = errors.New("secure random source or key primitive unavailable")
	ErrInvalidPublicKey   = errors.New("public key of invalid length")
	ErrUnknownHash        = errors.New("unknown public id hash")
	ErrMismatchedPair     = errors.New("private key does not match public key")
	ErrPublicIDMismatch   = errors.New("public id is not derived from public key")
	ErrInvalidAmount      = errors.New("amount differs from default")
)

// Address holds the owner keypair, the public id derived from the public key and the balance.
type Address struct {
	PublicID   []byte             `json:"public_id"  yaml:"public_id"`
	PublicKey  ed25519.PublicKey  `json:"public_key" yaml:"public_key"`
	PrivateKey ed25519.PrivateKey `json:"-"          yaml:"-"`
	Amount     uint64             `json:"amount"     yaml:"amount"`
}

// Config holds configuration of the address Generator.
type Config struct {
	Hash string `yaml:"hash"` // hash used to derive public id, sha256 or blake2b
}

// Option configures the Generator.
type Option func(g *Generator)

// WithEntropy sets the random source keys are generated from.
// Production code shall never replace crypto/rand.Reader.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// Generator creates new addresses.
// Generator holds no mutable state and is safe for concurrent use when entropy source is.
type Generator struct {
	entropy io.Reader
	hash    Hash
}

// NewGenerator creates new Generator or returns error if configured hash is unknown.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	h, err := ParseHash(cfg.Hash)
	if err != nil {
		return nil, err
	}
	g := &Generator{entropy: rand.Reader, hash: h}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

var defaultGenerator = &Generator{entropy: rand.Reader, hash: SHA256}

// Create creates a new Address with fresh ed25519 keypair and sha256 public id.
func Create() (Address, error) {
	return defaultGenerator.Create()
}

// DerivePublicID derives sha256 public id from the public key.
func DerivePublicID(pub []byte) ([]byte, error) {
	return defaultGenerator.DerivePublicID(pub)
}

// Hash returns hash the generator derives public ids with.
func (g *Generator) Hash() Hash {
	return g.hash
}

// Create generates new keypair and derives public id from its public part.
// Error is returned only when the entropy source fails and it wraps ErrEnvironmentFailure.
func (g *Generator) Create() (Address, error) {
	pub, prv, err := ed25519.GenerateKey(g.entropy)
	if err != nil {
		return Address{}, errors.Join(ErrEnvironmentFailure, err)
	}

	id, err := g.DerivePublicID(pub)
	if err != nil {
		return Address{}, errors.Join(ErrEnvironmentFailure, err)
	}

	return Address{
		PublicID:   id,
		PublicKey:  pub,
		PrivateKey: prv,
		Amount:     DefaultAmount,
	}, nil
}

// DerivePublicID hashes raw public key bytes. The result depends on the public key only.
func (g *Generator) DerivePublicID(pub []byte) ([]byte, error) {
	if len(pub) != PublicKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidPublicKey, len(pub), PublicKeyLength)
	}
	return g.hash.sum(pub), nil
}

// Validate checks that the Address is consistent for the given hash.
func (a Address) Validate(h Hash) error {
	if len(a.PublicKey) != PublicKeyLength {
		return ErrInvalidPublicKey
	}
	if len(a.PrivateKey) != PrivateKeyLength {
		return ErrMismatchedPair
	}
	pub, ok := a.PrivateKey.Public().(ed25519.PublicKey)
	if !ok || !bytes.Equal(pub, a.PublicKey) {
		return ErrMismatchedPair
	}
	if !bytes.Equal(h.sum(a.PublicKey), a.PublicID) {
		return ErrPublicIDMismatch
	}
	if a.Amount != DefaultAmount {
		return ErrInvalidAmount
	}
	return nil
}

// Wipe zeroes the private key in place.
// Call it once the private key is no longer needed.
// Wipe is the only method with a pointer receiver as it mutates the Address,
// copies of the Address share the same private key backing array and are wiped too.
func (a *Address) Wipe() {
	for i := range a.PrivateKey {
		a.PrivateKey[i] = 0
	}
}

// String returns address public description, private key is never included.
func (a Address) String() string {
	return fmt.Sprintf("public_id: %x, public_key: %x, amount: %d", a.PublicID, []byte(a.PublicKey), a.Amount)
}

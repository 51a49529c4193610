package address

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestCreateAddress(t *testing.T) {
	a, err := Create()
	assert.Nil(t, err)
	assert.Len(t, a.PublicID, PublicIDLength)
	assert.Len(t, a.PublicKey, PublicKeyLength)
	assert.Len(t, a.PrivateKey, PrivateKeyLength)
	assert.Equal(t, DefaultAmount, a.Amount)

	digest := sha256.Sum256(a.PublicKey)
	assert.Equal(t, hex.EncodeToString(digest[:]), hex.EncodeToString(a.PublicID))

	assert.NotEqual(t, make([]byte, PublicKeyLength), []byte(a.PublicKey))
	assert.NotEqual(t, make([]byte, PrivateKeyLength), []byte(a.PrivateKey))
	assert.Nil(t, a.Validate(SHA256))
}

func TestCreateAddressBlake2b(t *testing.T) {
	g, err := NewGenerator(Config{Hash: "blake2b"})
	require.Nil(t, err)

	a, err := g.Create()
	assert.Nil(t, err)
	digest := blake2b.Sum256(a.PublicKey)
	assert.Equal(t, digest[:], a.PublicID)
	assert.Len(t, a.PublicID, PublicIDLength)
	assert.Nil(t, a.Validate(BLAKE2b))
	assert.ErrorIs(t, a.Validate(SHA256), ErrPublicIDMismatch)
}

func TestNewGeneratorUnknownHash(t *testing.T) {
	g, err := NewGenerator(Config{Hash: "md5"})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrUnknownHash)
}

func TestParseHash(t *testing.T) {
	cases := map[string]Hash{
		"":            SHA256,
		"sha256":      SHA256,
		"SHA-256":     SHA256,
		"blake2b":     BLAKE2b,
		"Blake2b-256": BLAKE2b,
	}
	for name, expected := range cases {
		h, err := ParseHash(name)
		assert.Nil(t, err, name)
		assert.Equal(t, expected, h, name)
	}
	assert.Equal(t, "sha256", SHA256.String())
	assert.Equal(t, "blake2b", BLAKE2b.String())
}

func TestDerivePublicIDIsDeterministic(t *testing.T) {
	for _, h := range []Hash{SHA256, BLAKE2b} {
		g := &Generator{hash: h}
		a, err := Create()
		require.Nil(t, err)

		first, err := g.DerivePublicID(a.PublicKey)
		assert.Nil(t, err)
		second, err := g.DerivePublicID(append([]byte{}, a.PublicKey...))
		assert.Nil(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDerivePublicIDInvalidKey(t *testing.T) {
	for _, size := range []int{0, 1, PublicKeyLength - 1, PublicKeyLength + 1, PrivateKeyLength} {
		id, err := DerivePublicID(make([]byte, size))
		assert.Nil(t, id)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
	}
}

func TestPublicIDDependsOnPublicKeyOnly(t *testing.T) {
	a, err := Create()
	require.Nil(t, err)

	id, err := DerivePublicID(a.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicID, id)

	a.Wipe()
	id, err = DerivePublicID(a.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicID, id)
}

func TestCreateUniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		a, err := Create()
		require.Nil(t, err)
		key := string(a.PublicKey)
		_, ok := seen[key]
		require.False(t, ok, "duplicated public key at iteration %d", i)
		seen[key] = struct{}{}
	}
	assert.Len(t, seen, count)
}

func TestFixedLengthsAndDefaultAmount(t *testing.T) {
	for i := 0; i < 100; i++ {
		a, err := Create()
		require.Nil(t, err)
		assert.Len(t, a.PublicID, PublicIDLength)
		assert.Len(t, a.PublicKey, PublicKeyLength)
		assert.Len(t, a.PrivateKey, PrivateKeyLength)
		assert.Equal(t, uint64(0), a.Amount)
	}
}

func TestPrivateKeyIsNotStructurallyRelated(t *testing.T) {
	for i := 0; i < 100; i++ {
		a, err := Create()
		require.Nil(t, err)

		seed := a.PrivateKey.Seed()
		assert.False(t, bytes.Equal(seed, a.PublicKey))
		assert.False(t, bytes.Equal(seed, a.PublicID))
		assert.False(t, bytes.HasPrefix(a.PublicKey, seed[:8]))
		assert.False(t, bytes.HasPrefix(a.PublicID, seed[:8]))
		assert.False(t, bytes.Contains(a.PublicID, seed[:8]))

		idDigest := sha256.Sum256(a.PublicID)
		assert.False(t, bytes.Equal(seed, idDigest[:]))
		keyDigest := sha256.Sum256(a.PublicKey)
		assert.False(t, bytes.Equal(seed, keyDigest[:]))
	}
}

func TestCreateEnvironmentFailure(t *testing.T) {
	g, err := NewGenerator(Config{}, WithEntropy(failingReader{}))
	require.Nil(t, err)

	a, err := g.Create()
	assert.ErrorIs(t, err, ErrEnvironmentFailure)
	assert.Equal(t, Address{}, a)
}

func TestCreateShortEntropy(t *testing.T) {
	g, err := NewGenerator(Config{}, WithEntropy(bytes.NewReader([]byte{1, 2, 3})))
	require.Nil(t, err)

	a, err := g.Create()
	assert.ErrorIs(t, err, ErrEnvironmentFailure)
	assert.Nil(t, a.PrivateKey)
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)

	first, err := NewGenerator(Config{}, WithEntropy(bytes.NewReader(seed)))
	require.Nil(t, err)
	second, err := NewGenerator(Config{}, WithEntropy(bytes.NewReader(seed)))
	require.Nil(t, err)

	a, err := first.Create()
	assert.Nil(t, err)
	b, err := second.Create()
	assert.Nil(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, ed25519.NewKeyFromSeed(seed), a.PrivateKey)

	_, err = first.Create()
	assert.ErrorIs(t, err, ErrEnvironmentFailure)
}

func TestValidateFailures(t *testing.T) {
	a, err := Create()
	require.Nil(t, err)
	b, err := Create()
	require.Nil(t, err)

	swapped := a
	swapped.PrivateKey = b.PrivateKey
	assert.ErrorIs(t, swapped.Validate(SHA256), ErrMismatchedPair)

	foreignID := a
	foreignID.PublicID = b.PublicID
	assert.ErrorIs(t, foreignID.Validate(SHA256), ErrPublicIDMismatch)

	credited := a
	credited.Amount = 10
	assert.ErrorIs(t, credited.Validate(SHA256), ErrInvalidAmount)

	short := a
	short.PublicKey = a.PublicKey[:10]
	assert.ErrorIs(t, short.Validate(SHA256), ErrInvalidPublicKey)
}

func TestWipe(t *testing.T) {
	a, err := Create()
	require.Nil(t, err)
	pub := append([]byte{}, a.PublicKey...)

	a.Wipe()
	assert.Equal(t, make([]byte, PrivateKeyLength), []byte(a.PrivateKey))
	assert.Equal(t, pub, []byte(a.PublicKey))
}

func TestPrivateKeyNeverRendered(t *testing.T) {
	a, err := Create()
	require.Nil(t, err)

	raw, err := json.Marshal(a)
	assert.Nil(t, err)
	assert.NotContains(t, string(raw), "private")
	assert.NotContains(t, string(raw), hex.EncodeToString(a.PrivateKey))

	s := a.String()
	assert.Contains(t, s, hex.EncodeToString(a.PublicID))
	assert.False(t, strings.Contains(s, hex.EncodeToString(a.PrivateKey.Seed())))
}

func BenchmarkCreate(b *testing.B) {
	for n := 0; n < b.N; n++ {
		if _, err := Create(); err != nil {
			b.Fatal(err)
		}
	}
}

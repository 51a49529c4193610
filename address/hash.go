package address

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hash selects the digest used to derive public id from public key.
type Hash int

const (
	SHA256 Hash = iota
	BLAKE2b
)

// ParseHash parses hash name, empty name means SHA256.
func ParseHash(name string) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256", "sha-256":
		return SHA256, nil
	case "blake2b", "blake2b-256":
		return BLAKE2b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
}

func (h Hash) String() string {
	switch h {
	case SHA256:
		return "sha256"
	case BLAKE2b:
		return "blake2b"
	default:
		return "unknown"
	}
}

func (h Hash) sum(data []byte) []byte {
	switch h {
	case BLAKE2b:
		d := blake2b.Sum256(data)
		return d[:]
	default:
		d := sha256.Sum256(data)
		return d[:]
	}
}

package address

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
)

var (
	ErrCorruptedDigest  = errors.New("digest is corrupted")
	ErrInvalidSignature = errors.New("message signature isn't valid")
	ErrNoPrivateKey     = errors.New("address holds no valid private key")
)

// Sign signs the message with the address private key.
// Returns sha256 digest of the message and the ed25519 signature of that digest.
// The zero Address, returned by a failed Create, has no private key and cannot sign.
func (a Address) Sign(message []byte) (digest [32]byte, signature []byte, err error) {
	if len(a.PrivateKey) != PrivateKeyLength {
		return digest, nil, ErrNoPrivateKey
	}
	digest = sha256.Sum256(message)
	signature = ed25519.Sign(a.PrivateKey, digest[:])
	return digest, signature, nil
}

// Verify verifies that message digest is correct and is signed by the owner of the public key.
func Verify(pub ed25519.PublicKey, message, signature []byte, digest [32]byte) error {
	if len(pub) != PublicKeyLength {
		return ErrInvalidPublicKey
	}
	d := sha256.Sum256(message)
	if !bytes.Equal(digest[:], d[:]) {
		return ErrCorruptedDigest
	}
	if !ed25519.Verify(pub, d[:], signature) {
		return ErrInvalidSignature
	}
	return nil
}

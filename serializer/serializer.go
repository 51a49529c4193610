package serializer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

var ErrUnknownEncoding = errors.New("unknown text encoding")

// Encoding is the text encoding raw bytes are rendered with for display.
type Encoding string

const (
	Hex    Encoding = "hex"
	Base58 Encoding = "base58"
)

// ParseEncoding parses encoding name, empty name means Hex.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(name))) {
	case "", Hex:
		return Hex, nil
	case Base58:
		return Base58, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Encode renders input as text.
func (e Encoding) Encode(input []byte) string {
	if e == Base58 {
		return base58.Encode(input)
	}
	return HexEncode(input)
}

// Decode parses text produced by Encode back to bytes.
func (e Encoding) Decode(input string) ([]byte, error) {
	if e == Base58 {
		return Base58Decode(input)
	}
	return HexDecode(input)
}

// HexEncode encodes byte array to lowercase hex string.
func HexEncode(input []byte) string {
	return hex.EncodeToString(input)
}

// HexDecode decodes hex string, upper or lower case, to byte array.
func HexDecode(input string) ([]byte, error) {
	decode, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(input), "0x"))
	if err != nil {
		return nil, err
	}

	return decode, nil
}

// Base58Encode encodes byte array to base58 string.
func Base58Encode(input []byte) string {
	return base58.Encode(input)
}

// Base58Decode decodes base58 string to byte array.
func Base58Decode(input string) ([]byte, error) {
	decode, err := base58.Decode(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}

	return decode, nil
}

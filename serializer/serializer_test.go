package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexEncodeIsLowercase(t *testing.T) {
	s := HexEncode([]byte{0xAB, 0xCD, 0x01})
	assert.Equal(t, "abcd01", s)

	b, err := HexDecode("ABCD01")
	assert.Nil(t, err)
	assert.Equal(t, []byte{0xab, 0xcd, 0x01}, b)

	b, err = HexDecode("0xabcd01")
	assert.Nil(t, err)
	assert.Equal(t, []byte{0xab, 0xcd, 0x01}, b)
}

func TestHexDecodeFail(t *testing.T) {
	_, err := HexDecode("zz")
	assert.NotNil(t, err)
	_, err = HexDecode("abc")
	assert.NotNil(t, err)
}

func TestBase58(t *testing.T) {
	s := Base58Encode([]byte("hello"))
	assert.Equal(t, "Cn8eVZg", s)

	b, err := Base58Decode(s)
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = Base58Decode("0OIl")
	assert.NotNil(t, err)
}

func TestParseEncoding(t *testing.T) {
	e, err := ParseEncoding("")
	assert.Nil(t, err)
	assert.Equal(t, Hex, e)

	e, err = ParseEncoding("BASE58")
	assert.Nil(t, err)
	assert.Equal(t, Base58, e)

	_, err = ParseEncoding("base64")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestEncodingDecodesWhatItEncodes(t *testing.T) {
	data := []byte{0, 1, 2, 250, 255}
	for _, e := range []Encoding{Hex, Base58} {
		b, err := e.Decode(e.Encode(data))
		assert.Nil(t, err)
		assert.Equal(t, data, b)
	}
}

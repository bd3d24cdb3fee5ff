package malamute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawBits(t *rapid.T, minLen int, maxLen int, label string) []byte {
	var raw = rapid.SliceOfN(rapid.Byte(), minLen, maxLen).Draw(t, label)

	var bits = make([]byte, len(raw))
	for i, b := range raw {
		bits[i] = b & 1
	}

	return bits
}

func Test_BytesToBits_MsbFirst(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 1, 0, 1}, BytesToBits([]byte{0xA5}))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, BytesToBits([]byte{0x01}))
	assert.Empty(t, BytesToBits(nil))
}

func Test_BitsToBytes_Padding(t *testing.T) {
	// A partial final byte pads with zeros in the low positions.
	assert.Equal(t, []byte{0xA0}, BitsToBytes([]byte{1, 0, 1}))
	assert.Equal(t, []byte{0xFF, 0x80}, BitsToBytes([]byte{1, 1, 1, 1, 1, 1, 1, 1, 1}))
	assert.Nil(t, BitsToBytes(nil))
}

func Test_BitSerialization_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOf(rapid.Byte()).Draw(t, "data")

		// bytes -> bits -> bytes is the identity.
		assert.Equal(t, data, append([]byte{}, BitsToBytes(BytesToBits(data))...))

		// bits -> bytes -> bits is the identity when the bit
		// count is a multiple of eight.
		var bits = drawBits(t, 0, 256, "bits")
		bits = bits[:len(bits)-len(bits)%8]
		assert.Equal(t, bits, append([]byte{}, BytesToBits(BitsToBytes(bits))...))
	})
}

func Test_ConvEncode_KnownVector(t *testing.T) {
	// Worked through the generator equations by hand: input
	// 1,0,1,1 from state 0, then two zero tail bits from the
	// final state 11.
	var coded = ConvEncode([]byte{1, 0, 1, 1})

	assert.Equal(t, []byte{
		1, 1, // u=1 state 00
		1, 0, // u=0 state 10
		0, 0, // u=1 state 01
		0, 1, // u=1 state 10
		0, 1, // tail state 11
		1, 1, // tail state 01
	}, coded)

	var decoded, decodeErr = ViterbiDecode(coded)
	require.NoError(t, decodeErr)
	assert.Equal(t, []byte{1, 0, 1, 1}, decoded)
}

func Test_ConvEncode_OutputLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var bits = drawBits(t, 0, 512, "bits")

		var coded = ConvEncode(bits)
		assert.Len(t, coded, 2*(len(bits)+tailBits))
	})
}

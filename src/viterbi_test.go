package malamute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_ViterbiDecode_Rejections(t *testing.T) {
	var _, emptyErr = ViterbiDecode(nil)
	assert.ErrorIs(t, emptyErr, ErrInputEmpty)

	var _, oddErr = ViterbiDecode([]byte{1, 0, 1})
	assert.ErrorIs(t, oddErr, ErrDecodeInfeasible)

	// Two trellis steps only cover the tail; nothing is left over.
	var _, shortErr = ViterbiDecode([]byte{0, 0, 0, 0})
	assert.ErrorIs(t, shortErr, ErrDecodeInfeasible)
}

// Clean round trip for arbitrary inputs.
func Test_Viterbi_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var bits = drawBits(t, 1, 1024, "bits")

		var decoded, decodeErr = ViterbiDecode(ConvEncode(bits))
		require.NoError(t, decodeErr)
		assert.Equal(t, bits, decoded)
	})
}

// The free distance of this code is 5, so any single channel error is
// always corrected.
func Test_Viterbi_CorrectsSingleError(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var bits = drawBits(t, 8, 256, "bits")

		var coded = ConvEncode(bits)
		var flipAt = rapid.IntRange(0, len(coded)-1).Draw(t, "flipAt")
		coded[flipAt] ^= 1

		var decoded, decodeErr = ViterbiDecode(coded)
		require.NoError(t, decodeErr)
		assert.Equal(t, bits, decoded)
	})
}

// Exhaustive single-error sweep over one message, every coded bit
// position in turn.
func Test_Viterbi_CorrectsEveryPosition(t *testing.T) {
	var bits = BytesToBits([]byte{0xC3, 0x5A, 0x00, 0xFF, 0x17})

	var clean = ConvEncode(bits)

	for i := range clean {
		var coded = make([]byte, len(clean))
		copy(coded, clean)
		coded[i] ^= 1

		var decoded, decodeErr = ViterbiDecode(coded)
		require.NoErrorf(t, decodeErr, "flip at %d", i)
		assert.Equalf(t, bits, decoded, "flip at %d", i)
	}
}

// Ties must keep the earliest discovered path so every implementation
// decodes the same stream identically.  An all-ones pair stream is
// maximally ambiguous and exercises the tie-break.
func Test_Viterbi_DeterministicUnderTies(t *testing.T) {
	var coded = []byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	var decoded, decodeErr = ViterbiDecode(coded)
	require.NoError(t, decodeErr)

	// Hand-traced through the trellis with the strict-< update
	// rule; a last-wins rule would settle some states differently.
	assert.Equal(t, []byte{1, 0, 0, 1}, decoded)
}

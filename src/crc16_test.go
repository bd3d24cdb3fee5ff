package malamute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_crc16Ccitt_KnownVectors(t *testing.T) {
	// The standard CCITT-FALSE check value.
	assert.Equal(t, uint16(0x29B1), crc16Ccitt([]byte("123456789")))

	// Init value with nothing fed in.
	assert.Equal(t, uint16(0xFFFF), crc16Ccitt(nil))

	assert.Equal(t, uint16(0xE1F0), crc16Ccitt([]byte{0x00}))
}

func Test_crc16Ccitt_ByteSensitivity(t *testing.T) {
	var data = []byte("malamute test frame")

	var base = crc16Ccitt(data)

	for i := range data {
		var mutated = make([]byte, len(data))
		copy(mutated, data)
		mutated[i] ^= 0x01

		assert.NotEqualf(t, base, crc16Ccitt(mutated), "flip in byte %d went undetected", i)
	}
}

package malamute

import (
	"errors"
	"fmt"
)

// Every failure in the modem core maps onto one of these sentinels.
// Callers match with errors.Is; the wrapped message carries the
// expected vs. actual values where that helps diagnosis.

var (
	ErrInvalidConfig    = errors.New("invalid modem configuration")
	ErrInputEmpty       = errors.New("input is empty")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrWavTooLarge      = errors.New("wav data too large")
	ErrWavFormatInvalid = errors.New("wav format invalid")
	ErrWavTruncated     = errors.New("wav truncated")
	ErrNotEnoughSymbols = errors.New("not enough symbols")
	ErrDecodeInfeasible = errors.New("viterbi decode infeasible")

	ErrFrameTooShort  = errors.New("frame too short")
	ErrMarkerMismatch = errors.New("frame marker mismatch")
	ErrLengthMismatch = errors.New("frame length mismatch")
	ErrCrcMismatch    = errors.New("frame crc mismatch")
)

// wrapf attaches detail to a sentinel while keeping errors.Is working.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}

package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Receive side of the modem: .WAV sound file in,
 *		payload file out.
 *
 * Description:	Mirror of the transmit pipeline:
 *
 *		  tones -> coded bits -> Viterbi -> bytes -> frame
 *
 *		Decoder state lives for one file pass; nothing is
 *		shared between invocations.  Any failure is terminal
 *		for the call and no partial payload is written.
 *
 *----------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"
)

// DecodeResult reports what one recording decoded to.
type DecodeResult struct {
	PayloadBytes int
	Seq          byte
	TotalSamples int
	DataSymbols  int
}

// DecodeSamples runs the full receive pipeline over an in-memory
// sample stream, preamble included, and returns the recovered
// payload and sequence number.
func DecodeSamples(samples []int16, cfg Config) ([]byte, byte, error) {

	var demod, demodErr = NewDemodulator(cfg)
	if demodErr != nil {
		return nil, 0, demodErr
	}

	var coded, codedErr = demod.Demodulate(samples)
	if codedErr != nil {
		return nil, 0, codedErr
	}

	var bits, viterbiErr = ViterbiDecode(coded)
	if viterbiErr != nil {
		return nil, 0, viterbiErr
	}

	var frameBytes = BitsToBytes(bits)

	var payload, seq, parseErr = ParseFrame(frameBytes)
	if parseErr != nil {
		return nil, 0, parseErr
	}

	return payload, seq, nil
}

// DecodeWavToFile reads a WAV recording and writes the recovered
// payload to outPath.
func DecodeWavToFile(inPath string, outPath string, cfg Config) (*DecodeResult, error) {

	var validateErr = cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	var inFile, openErr = os.Open(inPath) //nolint:gosec // User-supplied input path from CLI
	if openErr != nil {
		return nil, fmt.Errorf("opening %s: %w", inPath, openErr)
	}
	defer inFile.Close()

	var r = bufio.NewReader(inFile)

	var numSamples, headerErr = readWavHeader(r, cfg.SampleRate)
	if headerErr != nil {
		return nil, headerErr
	}

	var samples, samplesErr = readSamples(r, numSamples)
	if samplesErr != nil {
		return nil, samplesErr
	}

	var payload, seq, decodeErr = DecodeSamples(samples, cfg)
	if decodeErr != nil {
		return nil, decodeErr
	}

	var writeErr = os.WriteFile(outPath, payload, 0644) //nolint:gosec // Payload is the user's own data
	if writeErr != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, writeErr)
	}

	return &DecodeResult{
		PayloadBytes: len(payload),
		Seq:          seq,
		TotalSamples: numSamples,
		DataSymbols:  numSamples/cfg.SamplesPerSymbol() - cfg.SyncSymbols,
	}, nil
}

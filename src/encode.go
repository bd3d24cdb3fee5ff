package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Transmit side of the modem: payload file in, .WAV
 *		sound file out.
 *
 * Description:	The pipeline is
 *
 *		  frame -> bits -> convolutional code -> 16-FSK tones
 *
 *		and every stage is deterministic, so the WAV header
 *		sizes are computed before a single sample is written
 *		and the symbol buffers stream straight into a buffered
 *		writer.
 *
 *----------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"
)

// EncodeResult reports what one transmission contains.
type EncodeResult struct {
	PayloadBytes int
	FrameBytes   int
	CodedBits    int
	TotalSamples uint64
}

// EncodePayload runs the full transmit pipeline in memory and
// returns the sample stream, preamble included.  The file encoder
// wraps this same pipeline around streaming I/O.
func EncodePayload(payload []byte, seq byte, cfg Config) ([]int16, error) {

	var coded, _, codedErr = encodeToCodedBits(payload, seq)
	if codedErr != nil {
		return nil, codedErr
	}

	var mod, modErr = NewModulator(cfg)
	if modErr != nil {
		return nil, modErr
	}

	return mod.Modulate(coded)
}

// encodeToCodedBits is the sample-rate independent front half of the
// transmit pipeline.
func encodeToCodedBits(payload []byte, seq byte) (coded []byte, frameLen int, err error) {

	var frame, frameErr = BuildFrame(payload, seq)
	if frameErr != nil {
		return nil, 0, frameErr
	}

	var bits = BytesToBits(frame)

	return ConvEncode(bits), len(frame), nil
}

// EncodeFileToWav reads a payload file and writes the modulated
// transmission as a WAV file.
func EncodeFileToWav(inPath string, outPath string, seq byte, cfg Config) (*EncodeResult, error) {

	var payload, readErr = os.ReadFile(inPath) //nolint:gosec // User-supplied input path from CLI
	if readErr != nil {
		return nil, fmt.Errorf("reading %s: %w", inPath, readErr)
	}

	if len(payload) == 0 {
		return nil, wrapf(ErrInputEmpty, "%s has no bytes", inPath)
	}

	var coded, frameLen, codedErr = encodeToCodedBits(payload, seq)
	if codedErr != nil {
		return nil, codedErr
	}

	var mod, modErr = NewModulator(cfg)
	if modErr != nil {
		return nil, modErr
	}

	var totalSamples = mod.TotalSamples(len(coded))

	var outFile, createErr = os.Create(outPath) //nolint:gosec // User-supplied output path from CLI
	if createErr != nil {
		return nil, fmt.Errorf("creating %s: %w", outPath, createErr)
	}
	defer outFile.Close()

	var w = bufio.NewWriter(outFile)

	var headerErr = writeWavHeader(w, cfg.SampleRate, totalSamples)
	if headerErr != nil {
		return nil, headerErr
	}

	for i := 0; i < cfg.SyncSymbols; i++ {
		var writeErr = writeSamples(w, mod.SymbolWave(PreambleSymbol(i)))
		if writeErr != nil {
			return nil, fmt.Errorf("writing preamble: %w", writeErr)
		}
	}

	for i := 0; i < len(coded); i += bitsPerSymbol {
		var sym = symbolFromBits(coded[i : i+bitsPerSymbol])

		var writeErr = writeSamples(w, mod.SymbolWave(sym))
		if writeErr != nil {
			return nil, fmt.Errorf("writing data symbols: %w", writeErr)
		}
	}

	var flushErr = w.Flush()
	if flushErr != nil {
		return nil, flushErr
	}

	var closeErr = outFile.Close()
	if closeErr != nil {
		return nil, closeErr
	}

	return &EncodeResult{
		PayloadBytes: len(payload),
		FrameBytes:   frameLen,
		CodedBits:    len(coded),
		TotalSamples: totalSamples,
	}, nil
}

package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Convert coded bits to 16-FSK tones, four bits per
 *		symbol, for writing to a .WAV sound file.
 *
 * Description:	One sinusoid buffer per symbol index is tabulated up
 *		front; emitting a symbol is then a single buffer copy.
 *		Each buffer holds N = floor(Fs * symdur) samples of
 *		amplitude * sin(2*pi*f*n/Fs) rounded to the nearest
 *		integer.  In DFT-bin mode the phase is computed as
 *		2*pi*k*n/N, which is the same frequency expressed
 *		without the intermediate Hz value.
 *
 *		A transmission is syncSymbols preamble symbols
 *		alternating 0,15,0,15,... followed by the data
 *		symbols.  The preamble gives the receiver its position
 *		reference and makes the signal obvious on a waterfall.
 *
 *----------------------------------------------------------------*/

import "math"

const bitsPerSymbol = 4

// Modulator holds the per-symbol waveform lookup table for one
// parameter set.
type Modulator struct {
	cfg   Config
	n     int
	waves [numTones][]int16
}

// NewModulator validates cfg and tabulates the 16 symbol waveforms.
func NewModulator(cfg Config) (*Modulator, error) {

	var validateErr = cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	var m = &Modulator{
		cfg: cfg,
		n:   cfg.SamplesPerSymbol(),
	}

	for i := 0; i < numTones; i++ {
		m.waves[i] = make([]int16, m.n)

		for n := 0; n < m.n; n++ {
			var phase float64
			if cfg.Tones.Mode == ToneModeDftBin {
				phase = 2 * math.Pi * float64(cfg.Tones.Bins[i]) * float64(n) / float64(m.n)
			} else {
				phase = 2 * math.Pi * cfg.Tones.Freqs[i] * float64(n) / float64(cfg.SampleRate)
			}

			m.waves[i][n] = int16(math.Round(float64(cfg.Amplitude) * math.Sin(phase)))
		}
	}

	return m, nil
}

// SamplesPerSymbol returns the window length N.
func (m *Modulator) SamplesPerSymbol() int {
	return m.n
}

// SymbolWave returns the sample buffer for symbol index sym.  The
// buffer is shared; callers must not modify it.
func (m *Modulator) SymbolWave(sym int) []int16 {
	return m.waves[sym&0xF]
}

// PreambleSymbol returns the i-th preamble symbol, alternating 0 and
// 15 starting with 0.
func PreambleSymbol(i int) int {
	if i%2 == 0 {
		return 0
	}
	return 15
}

// TotalSamples computes the sample count of a whole transmission.
// numCodedBits must be a multiple of four.
func (m *Modulator) TotalSamples(numCodedBits int) uint64 {
	var symbols = uint64(m.cfg.SyncSymbols) + uint64(numCodedBits/bitsPerSymbol)
	return symbols * uint64(m.n)
}

// Modulate renders the complete transmission, preamble plus data, as
// one in-memory sample buffer.  The file encoder streams symbol
// buffers instead; this form serves loopback use and tests.
func (m *Modulator) Modulate(codedBits []byte) ([]int16, error) {

	if len(codedBits)%bitsPerSymbol != 0 {
		return nil, wrapf(ErrInvalidConfig, "coded bit count %d not a multiple of %d", len(codedBits), bitsPerSymbol)
	}

	var out = make([]int16, 0, m.TotalSamples(len(codedBits)))

	for i := 0; i < m.cfg.SyncSymbols; i++ {
		out = append(out, m.waves[PreambleSymbol(i)]...)
	}

	for i := 0; i < len(codedBits); i += bitsPerSymbol {
		var sym = symbolFromBits(codedBits[i : i+bitsPerSymbol])
		out = append(out, m.waves[sym]...)
	}

	return out, nil
}

// symbolFromBits packs four coded bits b3,b2,b1,b0 (b3 first) into a
// symbol index.
func symbolFromBits(bits []byte) int {
	return int(bits[0]&1)<<3 | int(bits[1]&1)<<2 | int(bits[2]&1)<<1 | int(bits[3]&1)
}

// symbolToBits is the inverse, appending b3,b2,b1,b0 to dst.
func symbolToBits(dst []byte, sym int) []byte {
	return append(dst,
		byte(sym>>3)&1,
		byte(sym>>2)&1,
		byte(sym>>1)&1,
		byte(sym)&1)
}

package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	16-FSK demodulator.  Sample stream in, coded bits out.
 *
 * Description:	Symbol timing is open loop.  The first syncSymbols
 *		windows carry the preamble and are discarded; every
 *		following window of N samples is assumed to line up
 *		with one transmitted symbol.  There is no fine symbol
 *		phase tracking, which is fine for file-to-file use
 *		where both clocks are the same clock.
 *
 *		Per window the detector measures Goertzel power at
 *		the 16 configured tones and picks the argmax, ties
 *		going to the lower index.  In DFT-bin mode the window
 *		is conditioned first: the mean is removed, a Hann
 *		window tapers the edges, and the result is clamped
 *		back to int16.  That suppresses spectral leakage from
 *		the phase step at the window edges, which matters when
 *		adjacent tones sit on adjacent bins.
 *
 *----------------------------------------------------------------*/

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

type Demodulator struct {
	cfg  Config
	n    int
	dets [numTones]goertzel

	// DFT-bin mode only.
	hann    []float64
	scratch []float64
	shaped  []int16
}

// NewDemodulator validates cfg and prepares the per-tone detectors.
func NewDemodulator(cfg Config) (*Demodulator, error) {

	var validateErr = cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	var d = &Demodulator{
		cfg: cfg,
		n:   cfg.SamplesPerSymbol(),
	}

	for i := 0; i < numTones; i++ {
		d.dets[i] = newGoertzel(&d.cfg, i)
	}

	if cfg.Tones.Mode == ToneModeDftBin {
		d.hann = make([]float64, d.n)
		for i := range d.hann {
			d.hann[i] = 1
		}
		window.Hann(d.hann)

		d.scratch = make([]float64, d.n)
		d.shaped = make([]int16, d.n)
	}

	return d, nil
}

// SamplesPerSymbol returns the window length N.
func (d *Demodulator) SamplesPerSymbol() int {
	return d.n
}

// condition applies the DFT-bin mode pre-processing: DC removal, Hann
// taper, and re-quantization to 16 bits.
func (d *Demodulator) condition(win []int16) []int16 {

	var mean float64
	for _, x := range win {
		mean += float64(x)
	}
	mean /= float64(len(win))

	for i, x := range win {
		d.scratch[i] = (float64(x) - mean) * d.hann[i]
	}

	for i, x := range d.scratch {
		var v = math.Round(x)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		d.shaped[i] = int16(v)
	}

	return d.shaped
}

// DetectSymbol decides which of the 16 tones one window holds.
// powers, when non-nil, receives the 16 raw Goertzel powers.
func (d *Demodulator) DetectSymbol(win []int16, powers []float64) int {

	if d.cfg.Tones.Mode == ToneModeDftBin {
		win = d.condition(win)
	}

	var p [numTones]float64
	for i := range d.dets {
		p[i] = d.dets[i].power(win)
	}

	if powers != nil {
		copy(powers, p[:])
	}

	// First index of the maximum, so ties resolve to the lower
	// symbol.
	return floats.MaxIdx(p[:])
}

// Demodulate consumes a whole recording and returns the coded bit
// stream, four bits per data symbol, preamble excluded.
func (d *Demodulator) Demodulate(samples []int16) ([]byte, error) {

	var totalSymbols = len(samples) / d.n
	if totalSymbols <= d.cfg.SyncSymbols {
		return nil, wrapf(ErrNotEnoughSymbols, "%d symbol windows, preamble alone is %d", totalSymbols, d.cfg.SyncSymbols)
	}

	var coded = make([]byte, 0, (totalSymbols-d.cfg.SyncSymbols)*bitsPerSymbol)

	for symIdx := d.cfg.SyncSymbols; symIdx < totalSymbols; symIdx++ {
		var win = samples[symIdx*d.n : (symIdx+1)*d.n]
		var sym = d.DetectSymbol(win, nil)
		coded = symbolToBits(coded, sym)
	}

	return coded, nil
}

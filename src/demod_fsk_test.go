package malamute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Every pure tone must be detected as exactly its own symbol when the
// tones are orthogonal over the window (DFT-bin mode).
func Test_DetectSymbol_AllTones_DftBin(t *testing.T) {
	var cfg = DefaultConfig()

	var mod, modErr = NewModulator(cfg)
	require.NoError(t, modErr)

	var demod, demodErr = NewDemodulator(cfg)
	require.NoError(t, demodErr)

	for sym := 0; sym < numTones; sym++ {
		assert.Equalf(t, sym, demod.DetectSymbol(mod.SymbolWave(sym), nil), "tone %d", sym)
	}
}

// Fs=44100 and symdur=0.001 give N=44; bin 5 is 5011.36 Hz and the
// third entry of the default plan.  The fifteen other powers must be
// strictly smaller.
func Test_DetectSymbol_Bin5Window(t *testing.T) {
	var cfg = DefaultConfig()
	require.Equal(t, 44, cfg.SamplesPerSymbol())
	require.Equal(t, 5, cfg.Tones.Bins[2])
	require.InDelta(t, 5011.36, cfg.ToneFrequency(2), 0.01)

	var mod, modErr = NewModulator(cfg)
	require.NoError(t, modErr)

	var demod, demodErr = NewDemodulator(cfg)
	require.NoError(t, demodErr)

	var powers = make([]float64, numTones)
	var sym = demod.DetectSymbol(mod.SymbolWave(2), powers)

	assert.Equal(t, 2, sym)

	for i, p := range powers {
		if i == 2 {
			continue
		}
		assert.Lessf(t, p, powers[2], "tone %d power not below the target's", i)
	}
}

// Goertzel must agree with a DFT about where the energy is.
func Test_Goertzel_MatchesFFT(t *testing.T) {
	var cfg = DefaultConfig()
	var n = cfg.SamplesPerSymbol()

	var mod, modErr = NewModulator(cfg)
	require.NoError(t, modErr)

	var fft = fourier.NewFFT(n)

	for sym := 0; sym < numTones; sym++ {
		var seq = make([]float64, n)
		for i, s := range mod.SymbolWave(sym) {
			seq[i] = float64(s)
		}

		var coeffs = fft.Coefficients(nil, seq)

		// Largest magnitude among the plan's bins must be the
		// transmitted one.
		var bestBin = cfg.Tones.Bins[0]
		var bestMag = 0.0
		for _, k := range cfg.Tones.Bins {
			var mag = real(coeffs[k])*real(coeffs[k]) + imag(coeffs[k])*imag(coeffs[k])
			if mag > bestMag {
				bestMag = mag
				bestBin = k
			}
		}

		assert.Equalf(t, cfg.Tones.Bins[sym], bestBin, "symbol %d", sym)

		// The Goertzel detectors over the same raw window must peak
		// on the same bin.
		var goertzelBest = 0
		var goertzelBestPower = 0.0
		for i := range cfg.Tones.Bins {
			var p = newGoertzel(&cfg, i).power(mod.SymbolWave(sym))
			if p > goertzelBestPower {
				goertzelBestPower = p
				goertzelBest = i
			}
		}

		assert.Equalf(t, bestBin, cfg.Tones.Bins[goertzelBest], "symbol %d: Goertzel and FFT disagree", sym)
	}
}

func Test_DetectSymbol_FreeFrequency(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.Tones.Mode = ToneModeFreeFreq
	cfg.SymbolDuration = 0.002 // widen the window so 300 Hz spacing resolves cleanly

	var mod, modErr = NewModulator(cfg)
	require.NoError(t, modErr)

	var demod, demodErr = NewDemodulator(cfg)
	require.NoError(t, demodErr)

	for sym := 0; sym < numTones; sym++ {
		assert.Equalf(t, sym, demod.DetectSymbol(mod.SymbolWave(sym), nil), "tone %d", sym)
	}
}

func Test_Demodulate_NotEnoughSymbols(t *testing.T) {
	var cfg = DefaultConfig()

	var demod, demodErr = NewDemodulator(cfg)
	require.NoError(t, demodErr)

	// Preamble alone, no data symbols at all.
	var samples = make([]int16, cfg.SyncSymbols*cfg.SamplesPerSymbol())

	var _, err = demod.Demodulate(samples)
	assert.ErrorIs(t, err, ErrNotEnoughSymbols)
}

func Test_Demodulate_RecoversCodedBits(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.SyncSymbols = 8

	var mod, modErr = NewModulator(cfg)
	require.NoError(t, modErr)

	var demod, demodErr = NewDemodulator(cfg)
	require.NoError(t, demodErr)

	var coded = []byte{
		1, 0, 1, 1,
		0, 0, 0, 0,
		1, 1, 1, 1,
		0, 1, 1, 0,
	}

	var samples, modulateErr = mod.Modulate(coded)
	require.NoError(t, modulateErr)

	var got, demodulateErr = demod.Demodulate(samples)
	require.NoError(t, demodulateErr)
	assert.Equal(t, coded, got)
}

package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Goertzel tone power measurement.
 *
 * Description:	Evaluates the energy at one fixed frequency over one
 *		symbol window with a second order IIR recurrence,
 *		O(N) per tone and independent of the other tones.
 *		Only relative magnitudes matter to the demodulator;
 *		no normalization is applied.
 *
 *		The coefficient derivation differs per tone plan:
 *
 *		  free-frequency:  omega = 2*pi*f/Fs
 *		  DFT-bin:         omega = 2*pi*k/N
 *
 *		The DFT-bin form keeps the detector exactly aligned
 *		with the bins the modulator transmitted on.
 *
 *----------------------------------------------------------------*/

import "math"

type goertzel struct {
	coeff float64
}

// newGoertzel prepares the detector for tone index i of the plan.
func newGoertzel(cfg *Config, i int) goertzel {

	var omega float64
	if cfg.Tones.Mode == ToneModeDftBin {
		omega = 2 * math.Pi * float64(cfg.Tones.Bins[i]) / float64(cfg.SamplesPerSymbol())
	} else {
		omega = 2 * math.Pi * cfg.Tones.Freqs[i] / float64(cfg.SampleRate)
	}

	return goertzel{coeff: 2 * math.Cos(omega)}
}

// power runs the recurrence over one window and returns the squared
// magnitude at the configured frequency, up to scaling.
func (g goertzel) power(window []int16) float64 {

	var sPrev, sPrev2 float64

	for _, x := range window {
		var s = float64(x) + g.coeff*sPrev - sPrev2
		sPrev2 = sPrev
		sPrev = s
	}

	return sPrev*sPrev + sPrev2*sPrev2 - g.coeff*sPrev*sPrev2
}

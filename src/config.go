package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Modem configuration: sample rate, symbol shape,
 *		preamble length, and the 16-tone frequency plan.
 *
 *		All parameters travel explicitly through the pipeline;
 *		there is no global state.  Encode and decode must use
 *		the same configuration end to end.  A mismatch is not
 *		detectable and produces undefined symbol decisions.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const numTones = 16

// ToneMode selects how the 16 symbol frequencies are derived.
type ToneMode int

const (
	// ToneModeDftBin assigns tone i the frequency bins[i]*Fs/N so
	// every tone lands exactly on a DFT bin of the symbol window.
	// The tones are then orthogonal over one window, which is why
	// this is the preferred mode.
	ToneModeDftBin ToneMode = iota

	// ToneModeFreeFreq uses 16 caller specified frequencies in Hz.
	// Retained for compatibility with older recordings.
	ToneModeFreeFreq
)

func (m ToneMode) String() string {
	switch m {
	case ToneModeDftBin:
		return "dft-bin"
	case ToneModeFreeFreq:
		return "free-freq"
	default:
		return fmt.Sprintf("tone-mode-%d", int(m))
	}
}

// TonePlan is the tagged frequency assignment.  Freqs is consulted in
// free-frequency mode, Bins in DFT-bin mode.
type TonePlan struct {
	Mode  ToneMode
	Freqs [numTones]float64
	Bins  [numTones]int
}

// Config carries every knob of the modem.  The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	SampleRate     int     // Hz
	SymbolDuration float64 // seconds per symbol
	SyncSymbols    int     // preamble length in symbols
	Amplitude      int     // peak sample value on transmit
	Tones          TonePlan
}

// DefaultConfig returns the parameter set both sides assume when
// nothing else is specified: 44100 Hz, 1 ms symbols, 64 sync symbols,
// DFT bins 3..18.
func DefaultConfig() Config {
	var cfg = Config{
		SampleRate:     44100,
		SymbolDuration: 0.001,
		SyncSymbols:    64,
		Amplitude:      12000,
	}

	for i := 0; i < numTones; i++ {
		cfg.Tones.Bins[i] = 3 + i
		cfg.Tones.Freqs[i] = 2000 + 300*float64(i)
	}

	return cfg
}

// SamplesPerSymbol is the window length N = floor(Fs * symdur).
func (c *Config) SamplesPerSymbol() int {
	return int(float64(c.SampleRate) * c.SymbolDuration)
}

// ToneFrequency returns the transmit frequency of symbol i under the
// configured plan.
func (c *Config) ToneFrequency(i int) float64 {
	if c.Tones.Mode == ToneModeDftBin {
		return float64(c.Tones.Bins[i]) * float64(c.SampleRate) / float64(c.SamplesPerSymbol())
	}
	return c.Tones.Freqs[i]
}

// Validate checks the invariants the pipeline depends on.
func (c *Config) Validate() error {

	if c.SampleRate <= 0 {
		return wrapf(ErrInvalidConfig, "sample rate %d", c.SampleRate)
	}

	var n = c.SamplesPerSymbol()
	if n == 0 {
		return wrapf(ErrInvalidConfig, "symbol duration %g s too small for %d Hz", c.SymbolDuration, c.SampleRate)
	}

	if c.SyncSymbols < 0 {
		return wrapf(ErrInvalidConfig, "negative sync symbol count %d", c.SyncSymbols)
	}

	if c.Amplitude < 0 || c.Amplitude > 32767 {
		return wrapf(ErrInvalidConfig, "amplitude %d outside int16 range", c.Amplitude)
	}

	if c.Tones.Mode == ToneModeDftBin {
		for i, k := range c.Tones.Bins {
			// Bins at 0 or N/2 and beyond do not describe a
			// real oscillation over the window.
			if k <= 0 || float64(k) >= float64(n)/2 {
				return wrapf(ErrInvalidConfig, "bin %d for tone %d outside (0, %d/2)", k, i, n)
			}
		}
	}

	return nil
}

/*------------------------------------------------------------------
 *
 * Modem profiles.
 *
 * A profile is a YAML file holding a complete parameter set, so a
 * matching pair of stations can share one file instead of a long
 * command line.  Explicit command line options still win; the CLI
 * applies the profile first and flags on top.
 *
 *----------------------------------------------------------------*/

type profileFile struct {
	SampleRate     int       `yaml:"sample_rate"`
	SymbolDuration float64   `yaml:"symbol_duration"`
	SyncSymbols    *int      `yaml:"sync_symbols"`
	Amplitude      int       `yaml:"amplitude"`
	ToneMode       string    `yaml:"tone_mode"`
	Bins           []int     `yaml:"bins"`
	Freqs          []float64 `yaml:"freqs"`
}

// LoadProfile reads a YAML modem profile and overlays it on cfg.
// Absent fields keep their current values.
func LoadProfile(path string, cfg *Config) error {

	var raw, readErr = os.ReadFile(path) //nolint:gosec // User-supplied profile path from CLI
	if readErr != nil {
		return fmt.Errorf("reading profile: %w", readErr)
	}

	var pf profileFile
	var yamlErr = yaml.Unmarshal(raw, &pf)
	if yamlErr != nil {
		return fmt.Errorf("parsing profile %s: %w", path, yamlErr)
	}

	if pf.SampleRate != 0 {
		cfg.SampleRate = pf.SampleRate
	}

	if pf.SymbolDuration != 0 {
		cfg.SymbolDuration = pf.SymbolDuration
	}

	if pf.SyncSymbols != nil {
		cfg.SyncSymbols = *pf.SyncSymbols
	}

	if pf.Amplitude != 0 {
		cfg.Amplitude = pf.Amplitude
	}

	switch pf.ToneMode {
	case "":
		// keep current mode
	case "dft-bin":
		cfg.Tones.Mode = ToneModeDftBin
	case "free-freq":
		cfg.Tones.Mode = ToneModeFreeFreq
	default:
		return wrapf(ErrInvalidConfig, "unknown tone_mode %q in %s", pf.ToneMode, path)
	}

	if len(pf.Bins) > 0 {
		if len(pf.Bins) != numTones {
			return wrapf(ErrInvalidConfig, "profile %s has %d bins, want %d", path, len(pf.Bins), numTones)
		}
		copy(cfg.Tones.Bins[:], pf.Bins)
	}

	if len(pf.Freqs) > 0 {
		if len(pf.Freqs) != numTones {
			return wrapf(ErrInvalidConfig, "profile %s has %d freqs, want %d", path, len(pf.Freqs), numTones)
		}
		copy(cfg.Tones.Freqs[:], pf.Freqs)
	}

	return nil
}

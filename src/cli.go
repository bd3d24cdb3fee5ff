package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Command line plumbing shared by the encode and decode
 *		tools: modem parameter flags, profile loading, and
 *		the console logger.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

// Console diagnostics go to stderr; stdout stays clean for piping.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// modemFlags registers the parameter options common to encode and
// decode and applies them, profile first and explicit flags on top.
type modemFlags struct {
	fs *pflag.FlagSet

	profile    *string
	sampleRate *int
	symdur     *float64
	bitdur     *float64
	sync       *int

	freqs [numTones]*float64
	bins  [numTones]*int
}

func addModemFlags(fs *pflag.FlagSet) *modemFlags {

	var def = DefaultConfig()

	var mf = &modemFlags{fs: fs}

	mf.profile = fs.String("profile", "", "YAML modem profile file.")
	mf.sampleRate = fs.Int("sr", def.SampleRate, "Audio sample rate in Hz.")
	mf.symdur = fs.Float64("symdur", def.SymbolDuration, "Symbol duration in seconds.")
	mf.bitdur = fs.Float64("bitdur", def.SymbolDuration, "Alias of --symdur.")
	mf.sync = fs.Int("sync", def.SyncSymbols, "Number of preamble sync symbols.")

	for i := 0; i < numTones; i++ {
		mf.freqs[i] = fs.Float64(fmt.Sprintf("f%d", i), def.Tones.Freqs[i],
			fmt.Sprintf("Tone %d frequency in Hz (free-frequency mode).", i))
		mf.bins[i] = fs.Int(fmt.Sprintf("bin%d", i), def.Tones.Bins[i],
			fmt.Sprintf("Tone %d DFT bin (DFT-bin mode).", i))
	}

	return mf
}

func (mf *modemFlags) apply(cfg *Config) error {

	if *mf.profile != "" {
		var profileErr = LoadProfile(*mf.profile, cfg)
		if profileErr != nil {
			return profileErr
		}
	}

	if mf.fs.Changed("sr") {
		cfg.SampleRate = *mf.sampleRate
	}

	// --bitdur is a compatibility alias; an explicit --symdur wins.
	if mf.fs.Changed("symdur") {
		cfg.SymbolDuration = *mf.symdur
	} else if mf.fs.Changed("bitdur") {
		cfg.SymbolDuration = *mf.bitdur
	}

	if mf.fs.Changed("sync") {
		cfg.SyncSymbols = *mf.sync
	}

	var anyFreq, anyBin bool
	for i := 0; i < numTones; i++ {
		if mf.fs.Changed(fmt.Sprintf("f%d", i)) {
			anyFreq = true
			cfg.Tones.Freqs[i] = *mf.freqs[i]
		}
		if mf.fs.Changed(fmt.Sprintf("bin%d", i)) {
			anyBin = true
			cfg.Tones.Bins[i] = *mf.bins[i]
		}
	}

	// The two tone plans are mutually exclusive; whichever family
	// of options appears selects the mode.
	switch {
	case anyFreq && anyBin:
		return wrapf(ErrInvalidConfig, "cannot mix --fN and --binN options")
	case anyFreq:
		cfg.Tones.Mode = ToneModeFreeFreq
	case anyBin:
		cfg.Tones.Mode = ToneModeDftBin
	}

	return nil
}

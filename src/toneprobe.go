package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Diagnostic tool: show what the symbol detector sees
 *		in each window of a recording.
 *
 * Description:	Prints one line per symbol window with the detected
 *		symbol index and the 16 Goertzel powers, preamble
 *		windows marked.  Useful for checking tone separation
 *		and preamble alignment when a recording refuses to
 *		decode.
 *
 *----------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// ToneprobeMain is the entry point of the toneprobe tool.
func ToneprobeMain(args []string) {

	var fs = pflag.NewFlagSet("toneprobe", pflag.ExitOnError)

	var input = fs.StringP("input", "i", "", "Input .wav file.")
	var maxWindows = fs.IntP("max-windows", "n", 0, "Stop after this many windows (0 = all).")
	var mf = addModemFlags(fs)
	var help = fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: toneprobe -i <input.wav> [options]\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Prints the detected symbol and per-tone Goertzel powers for each\n")
		fmt.Fprintf(os.Stderr, "symbol window of a recording.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fs.PrintDefaults()
	}

	fs.Parse(args) //nolint:errcheck // ExitOnError

	if *help {
		fs.Usage()
		os.Exit(1)
	}

	if *input == "" {
		logger.Error("-i is required")
		fs.Usage()
		os.Exit(1)
	}

	var cfg = DefaultConfig()

	var applyErr = mf.apply(&cfg)
	if applyErr != nil {
		logger.Fatal("bad modem parameters", "err", applyErr)
	}

	var probeErr = toneprobe(os.Stdout, *input, *maxWindows, cfg)
	if probeErr != nil {
		logger.Fatal("probe failed", "err", probeErr)
	}
}

func toneprobe(out *os.File, path string, maxWindows int, cfg Config) error {

	var demod, demodErr = NewDemodulator(cfg)
	if demodErr != nil {
		return demodErr
	}

	var inFile, openErr = os.Open(path) //nolint:gosec // User-supplied input path from CLI
	if openErr != nil {
		return openErr
	}
	defer inFile.Close()

	var r = bufio.NewReader(inFile)

	var numSamples, headerErr = readWavHeader(r, cfg.SampleRate)
	if headerErr != nil {
		return headerErr
	}

	var samples, samplesErr = readSamples(r, numSamples)
	if samplesErr != nil {
		return samplesErr
	}

	var n = demod.SamplesPerSymbol()
	var totalWindows = len(samples) / n

	var w = bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintf(w, "# %d samples, %d windows of %d samples, %d sync symbols, tone plan %s\n",
		len(samples), totalWindows, n, cfg.SyncSymbols, cfg.Tones.Mode)

	var powers = make([]float64, numTones)

	for idx := 0; idx < totalWindows; idx++ {
		if maxWindows > 0 && idx >= maxWindows {
			break
		}

		var win = samples[idx*n : (idx+1)*n]
		var sym = demod.DetectSymbol(win, powers)

		var tag = "data"
		if idx < cfg.SyncSymbols {
			tag = "sync"
		}

		fmt.Fprintf(w, "%6d %s sym=%2d powers=", idx, tag, sym)
		for _, p := range powers {
			fmt.Fprintf(w, " %.3g", p)
		}
		fmt.Fprintln(w)
	}

	return nil
}

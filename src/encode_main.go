package malamute

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// EncodeMain is the entry point of "malamute encode".
func EncodeMain(args []string) {

	var fs = pflag.NewFlagSet("encode", pflag.ExitOnError)

	var input = fs.StringP("input", "i", "", "Input payload file.")
	var output = fs.StringP("output", "o", "", "Output .wav file.")
	var amplitude = fs.Int("amp", DefaultConfig().Amplitude, "Peak sample amplitude, 0 - 32767.")
	var mf = addModemFlags(fs)
	var help = fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: malamute encode -i <input.bin> -o <output.wav> [options]\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Wraps the payload in a frame, applies the rate 1/2 convolutional\n")
		fmt.Fprintf(os.Stderr, "code, and modulates it as 16-FSK tones into a mono 16-bit WAV file.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  malamute encode -i report.bin -o report.wav\n")
		fmt.Fprintf(os.Stderr, "Example:  malamute encode -i report.bin -o report.wav --sr 48000 --sync 128\n")
	}

	fs.Parse(args) //nolint:errcheck // ExitOnError

	if *help {
		fs.Usage()
		os.Exit(1)
	}

	if *input == "" || *output == "" {
		logger.Error("both -i and -o are required for encode")
		fs.Usage()
		os.Exit(1)
	}

	var cfg = DefaultConfig()

	var applyErr = mf.apply(&cfg)
	if applyErr != nil {
		logger.Fatal("bad modem parameters", "err", applyErr)
	}

	if fs.Changed("amp") {
		cfg.Amplitude = *amplitude
	}

	// The wire format carries a sequence byte but a single-frame
	// transmission always sends 0.  See BuildFrame for callers
	// that need the field.
	var res, encodeErr = EncodeFileToWav(*input, *output, 0, cfg)
	if encodeErr != nil {
		logger.Fatal("encode failed", "err", encodeErr)
	}

	logger.Info("encoded",
		"in", *input,
		"out", *output,
		"payload_bytes", res.PayloadBytes,
		"coded_bits", res.CodedBits,
		"samples", res.TotalSamples,
		"seconds", fmt.Sprintf("%.2f", float64(res.TotalSamples)/float64(cfg.SampleRate)))
}

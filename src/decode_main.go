package malamute

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

// DecodeMain is the entry point of "malamute decode".
func DecodeMain(args []string) {

	var fs = pflag.NewFlagSet("decode", pflag.ExitOnError)

	var input = fs.StringP("input", "i", "", "Input .wav file.")
	var output = fs.StringP("output", "o", "", "Output payload file.")
	var logFile = fs.StringP("log-file", "L", "", "Append decode activity to this CSV file.")
	var logDir = fs.StringP("log-dir", "l", "", "Append decode activity to daily CSV files in this directory.")
	var mf = addModemFlags(fs)
	var help = fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: malamute decode -i <input.wav> -o <output.bin> [options]\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Demodulates the 16-FSK tones, corrects channel errors with the\n")
		fmt.Fprintf(os.Stderr, "Viterbi decoder, verifies the frame CRC and recovers the payload.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "The modem parameters must match the ones used for encoding.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  malamute decode -i report.wav -o report.bin\n")
	}

	fs.Parse(args) //nolint:errcheck // ExitOnError

	if *help {
		fs.Usage()
		os.Exit(1)
	}

	if *input == "" || *output == "" {
		logger.Error("both -i and -o are required for decode")
		fs.Usage()
		os.Exit(1)
	}

	if *logFile != "" && *logDir != "" {
		logger.Fatal("use --log-file or --log-dir but not both")
	}

	var cfg = DefaultConfig()

	var applyErr = mf.apply(&cfg)
	if applyErr != nil {
		logger.Fatal("bad modem parameters", "err", applyErr)
	}

	var activity *ActivityLog
	var activityErr error

	switch {
	case *logFile != "":
		activity, activityErr = OpenActivityLog(*logFile)
	case *logDir != "":
		activity, activityErr = OpenDailyActivityLog(*logDir, time.Now())
	}

	if activityErr != nil {
		logger.Fatal("cannot open activity log", "err", activityErr)
	}

	var res, decodeErr = DecodeWavToFile(*input, *output, cfg)

	if activity != nil {
		var recordErr = activity.Record(time.Now(), *input, res, decodeErr)
		if recordErr != nil {
			logger.Error("cannot write activity log", "err", recordErr)
		}

		var closeErr = activity.Close()
		if closeErr != nil {
			logger.Error("cannot close activity log", "err", closeErr)
		}
	}

	if decodeErr != nil {
		logger.Fatal("decode failed", "err", decodeErr)
	}

	logger.Info("decoded",
		"in", *input,
		"out", *output,
		"payload_bytes", res.PayloadBytes,
		"seq", res.Seq,
		"data_symbols", res.DataSymbols)
}

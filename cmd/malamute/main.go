package main

/*------------------------------------------------------------------
 *
 * Purpose:	Main program for the malamute data-over-audio modem:
 *		encode a binary payload into a 16-FSK .WAV sound
 *		file, or decode such a file back into the payload.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	malamute "github.com/quietpaw/malamute/src"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  malamute encode -i <input.bin> -o <output.wav> [options]\n")
	fmt.Fprintf(os.Stderr, "  malamute decode -i <input.wav> -o <output.bin> [options]\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Run \"malamute encode --help\" or \"malamute decode --help\" for options.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		malamute.EncodeMain(os.Args[2:])
	case "decode":
		malamute.DecodeMain(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q.\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

package main

import (
	"os"

	malamute "github.com/quietpaw/malamute/src"
)

func main() {
	malamute.ToneprobeMain(os.Args[1:])
}

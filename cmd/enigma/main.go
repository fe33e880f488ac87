// Command enigma runs the three-rotor cipher machine from the command line.
package main

import (
	"os"

	"github.com/roach88/enigma/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}

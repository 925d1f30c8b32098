// Command slider inspects the game's persisted settings, chirp lines and
// artifact inventory screen.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/slider/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

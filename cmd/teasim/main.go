// Command teasim runs scenario files against simulated init/update/view
// programs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/teasim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

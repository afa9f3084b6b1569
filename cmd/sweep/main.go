// Command sweep runs a configured clean command at the project root and
// persists the invocation for replay.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sweep/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/bollu/Wheeler/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own diagnostics; the error carries the
		// exit code.
		code := cli.GetExitCode(err)
		if code == cli.ExitCommandError {
			fmt.Fprintf(os.Stderr, "wheeler: %v\n", err)
		}
		os.Exit(code)
	}
}

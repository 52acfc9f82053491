package main

import (
	"errors"
	"fmt"
	"os"

	"gitre.dev/gitre/internal/cli"
	gitreerrors "gitre.dev/gitre/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for usage errors,
// the git command's own exit code when known, 1 otherwise.
func exitCode(err error) int {
	if gitreerrors.IsUsageError(err) {
		return 2
	}

	var cmdErr *gitreerrors.GitCommandError
	if errors.As(err, &cmdErr) {
		if code := cmdErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

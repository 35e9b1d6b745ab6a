// Package commands contains the glue between cobra commands and the rich error output
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command that prints its errors as rich errors
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wires run into cmd. A failing run prints the error and exits with code 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{cmd, run}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		if err := run.RunE(cmd, args); err != nil {
			os.Exit(PrintError(os.Stderr, err))
		}
	}
	return build
}

// PrintError prints err as a rich error to w and returns the exit code to use
func PrintError(w io.Writer, err error) int {
	fmt.Fprintln(w, ToCliError(err).RichError()+"\n")
	return 1
}

// Package cli wires the sketchvec command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
)

// Exit statuses.
const (
	exitOK     = 0
	exitError  = 1
	exitDecode = 2
)

type rootOptions struct {
	logLevel string
	stdout   io.Writer
	stderr   io.Writer
	log      logger.Logger
}

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line in args and returns the process exit
// status. Stroke data goes to stdout, diagnostics to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var decodeErr *edges.DecodeError
	if errors.As(err, &decodeErr) {
		fmt.Fprintf(stderr, "cannot read image: %v\n", decodeErr)
		return exitDecode
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "sketchvec",
		Short:         "Convert raster images into ordered pen strokes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logger.LevelFromEnv()
			if cmd.Flags().Changed("log-level") {
				level = logger.ParseLevel(opts.logLevel)
			}
			opts.log = logger.NewZerolog(zerolog.ConsoleWriter{
				Out:        stderr,
				NoColor:    true,
				TimeFormat: "15:04:05",
			}, level)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error|off (overrides LOG_LEVEL)")

	cmd.AddCommand(vectorizeCmd(opts))
	cmd.AddCommand(batchCmd(opts))
	cmd.AddCommand(configCmd(opts))
	return cmd
}

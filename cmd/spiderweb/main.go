package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/internal/cli"
	errs "github.com/matzehuels/spiderweb/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to the process status: 130 for an interrupt, 2 for
// a bad config file, 1 otherwise. The message is printed unless the
// run was interrupted.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	msg := errs.UserMessage(err)
	if cause := errors.Unwrap(err); errs.Is(err, errs.ErrCodeInvalidConfig) && cause != nil {
		msg += ": " + cause.Error()
	}
	fmt.Fprintln(os.Stderr, msg)
	if errs.Is(err, errs.ErrCodeInvalidConfig) {
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Apply the log level before the root hook loads the config.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

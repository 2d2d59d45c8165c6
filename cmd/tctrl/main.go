// Package main is the entry point for the tctrl CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tctrl/cli/internal/cmd"
	oerrors "github.com/tctrl/cli/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Only print if the command layer hasn't already printed it
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}

// Package main is the entry point for the graft CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hasuim/graft/cmd"
	"github.com/hasuim/graft/internal/logging"
)

// main executes the root command under a signal-aware context and maps
// the result to an exit code: 0 on success, 130 on interrupt, 1 on any
// other error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()

	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logging.Info("interrupted")
		os.Exit(130)
	}

	logging.Error("command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/maplebgm-data/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), errors.Is(err, tui.ErrCancelled):
		fmt.Fprintln(os.Stderr, "Build cancelled.")
		return 130
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

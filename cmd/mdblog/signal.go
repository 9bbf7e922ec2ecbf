package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext derives a context canceled by Ctrl-C or SIGTERM, so an
// interrupted build stops between files and exits with ExitInterrupted.
// syscall.SIGTERM is defined on every platform but only delivered on Unix.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

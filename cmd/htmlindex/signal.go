package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals stop a running command. SIGTERM is never delivered on
// Windows, where only os.Interrupt fires.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// notifyContext returns a context canceled by the first shutdown signal.
// Once it is canceled the signals get their default behavior back, so a
// second Ctrl-C during a slow server drain or PDF print exits at once.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	context.AfterFunc(ctx, stop)
	return ctx, stop
}

//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext derives a context that cancels on Ctrl-C or SIGTERM, so an
// in-flight generation can stop between pipeline stages. The caller must
// invoke the returned stop function.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

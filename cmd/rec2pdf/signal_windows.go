//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives a context that cancels on Ctrl-C, so an in-flight
// generation can stop between pipeline stages. The caller must invoke the
// returned stop function. SIGTERM does not exist on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

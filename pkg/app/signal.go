package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalContext returns a context canceled on SIGINT or SIGTERM.
// A second signal terminates the process immediately.
func SetupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1)
	}()

	return ctx
}

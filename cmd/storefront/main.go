package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd, cleanup := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)

	cleanup()
	stop()

	if err != nil {
		os.Exit(1)
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command agml browses public agricultural datasets and moves their archives.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/suparena/agml/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

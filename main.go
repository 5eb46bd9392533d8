package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fullstackdevtools/csvfetch/cmd"
)

// Set during build via -ldflags "-X main.version=X.Y.Z"
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx, version, gitCommit, buildTime)
	stop()
	os.Exit(code)
}

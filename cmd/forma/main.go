package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pseudomuto/forma/pkg/cmd"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := &cmd.Version{
		Version:   version,
		Commit:    commit,
		Timestamp: date,
	}

	// Run logs the failure itself.
	if err := cmd.Run(ctx, v, os.Args); err != nil {
		stop()
		os.Exit(1)
	}
}

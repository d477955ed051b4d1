package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"

	"ipsweep/internal/runner"
)

func main() {
	options := runner.ParseOptions()

	r, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	// Ctrl-C stops issuing new batches; in-flight probes drain within
	// their own timeouts and partial results are still reported.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
locstore inspects, converts and compares translation store files.
*/
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/locstore/locstore/core/audit"
)

// main is the entry point of the application.
func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errStoresDiffer) {
			os.Exit(1)
		}

		log.Fatal().Err(err).Msg("Command failed")
	}
}

// run executes the command line args until it completes or the process
// receives SIGINT or SIGTERM.
func run(args []string) error {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

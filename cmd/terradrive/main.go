// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Command terradrive drives a single provider-managed resource through
// its lifecycle from the command line: install or locate the provider
// binary, start it, configure it, run one lifecycle operation, and print
// the resulting state as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/terradrive/terradrive/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.HCLogger().Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process-wide hclog logger. Subsystems
// derive named loggers from the root via HCLogger().Named(...).
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// envLog selects the log level. Unset or empty means logging is off.
const envLog = "TD_LOG"

var validLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

var (
	rootOnce sync.Once
	root     hclog.Logger
)

// HCLogger returns the root logger. The level is read from TD_LOG once,
// on first use.
func HCLogger() hclog.Logger {
	rootOnce.Do(func() {
		logOutput := io.Writer(os.Stderr)
		level, ok := globalLogLevel()
		if !ok {
			fmt.Fprintf(os.Stderr, "[WARN] invalid log level in %s, defaulting to TRACE (valid levels: %s)\n",
				envLog, strings.Join(validLevels, ", "))
		}

		root = hclog.New(&hclog.LoggerOptions{
			Name:              "terradrive",
			Level:             level,
			Output:            logOutput,
			IndependentLevels: true,
		})
	})
	return root
}

func globalLogLevel() (hclog.Level, bool) {
	envLevel := strings.ToUpper(os.Getenv(envLog))
	if envLevel == "" {
		return hclog.Off, true
	}
	for _, l := range validLevels {
		if envLevel == l {
			return hclog.LevelFromString(envLevel), true
		}
	}
	return hclog.Trace, false
}

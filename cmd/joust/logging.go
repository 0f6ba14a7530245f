package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// openLogger returns the game logger. The terminal belongs to the game,
// so output goes to --log-file or nowhere. The returned func closes the file.
func openLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "joust",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the process logger. One instance is built at
// startup and passed explicitly to each component; it writes human-readable
// lines to the console and JSON lines to a local log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to both console (pretty format) and the log
// file at path (append, JSON). The returned closer releases the log file.
func New(console io.Writer, path string) (zerolog.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	cw := zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"}
	logger := zerolog.New(zerolog.MultiLevelWriter(cw, file)).
		With().Timestamp().Logger()

	zerolog.TimeFieldFormat = time.RFC3339

	return logger, file.Close, nil
}

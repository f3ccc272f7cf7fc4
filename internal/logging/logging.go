// Package logging builds the append-only file logger the submission client
// records its events to.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "traffic_violation.log"

// NewFileLogger opens path for appending and returns a timestamped logger
// writing to it, along with the closer for the underlying file. Each event
// carries an RFC3339 timestamp and a level field.
func NewFileLogger(path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(f).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return log, f, nil
}

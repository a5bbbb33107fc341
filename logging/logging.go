package logging

import (
	"fmt"
	"time"

	"github.com/clustervault/s3dirsync/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// NewLogger instantiates and returns a new *zerolog.Logger built from the
// logging.* configuration keys.
func NewLogger() *zerolog.Logger {
	zerolog.DurationFieldUnit = time.Second
	zerolog.TimeFieldFormat = time.RFC3339

	// Log writes go through a diode so a slow destination never blocks the
	// interactive session.
	wr := diode.NewWriter(newLogWriter(), 1000, 10*time.Millisecond, func(missed int) {
		fmt.Printf("dropped %d messages", missed)
	})

	l := zerolog.New(zerolog.MultiLevelWriter(wr)).With().Timestamp()

	logger := l.Logger()

	if lvl, err := zerolog.ParseLevel(config.LoggingLevel.String()); err == nil {
		logger = logger.Level(lvl)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return &logger
}

package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/clustervault/s3dirsync/config"
	"github.com/rs/zerolog"
)

// newLogWriter selects an [io.Writer] for logging based on the configured
// output destination and format. Text logs destined for a terminal get the
// zerolog console treatment; anything else is raw JSON or an append-only
// file.
func newLogWriter() io.Writer {
	output := config.LoggingOutput.String()
	format := config.LoggingFormat.String()

	switch format {
	case "json":
		switch output {
		case "stdout":
			return os.Stdout
		case "stderr":
			return os.Stderr
		default:
			return fileWriter(output)
		}

	case "text":
		switch output {
		case "stdout":
			return consoleWriter(os.Stdout)
		case "stderr":
			return consoleWriter(os.Stderr)
		default:
			return fileWriter(output)
		}
	}

	// Only warn if invalid values are set
	if output != "" && format != "" {
		fmt.Println("[WARN] Unknown log format / output combination, defaulting to stderr")
	}

	return os.Stderr
}

func fileWriter(path string) io.Writer {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("[ERROR] Failed to open log file:", err)
		fmt.Println("[WARN] Defaulting to stderr")

		return os.Stderr
	}

	return f
}

// consoleWriter creates a [zerolog.ConsoleWriter] that formats log messages
// for display in console environments.
func consoleWriter(out *os.File) zerolog.ConsoleWriter {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: config.LoggingTimeFormat.String(),
		NoColor:    !config.LoggingColors.Bool(),
	}

	writer.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.CallerFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}

	return writer
}

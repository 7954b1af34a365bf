package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/eventdesk/pkg/logger"
)

// SetupLogging initializes the global logger, writing to stdout and, when
// logFile is set, to that file as well.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Eventdesk Contacts Seed Tool
============================

Creates synthetic contacts through the contacts API, verifies they are
listed and optionally deletes them again.

Usage:
  go run ./cmd/seed-contacts [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -contacts int
        Number of contacts to create (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -cleanup
        Delete the created contacts when done
  -log string
        Also write logs to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/seed-contacts -contacts 500 -workers 16
  go run ./cmd/seed-contacts -cleanup -url http://localhost:9090
`)
}

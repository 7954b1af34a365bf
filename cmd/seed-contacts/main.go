package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/eventdesk/internal/seed"
)

// Default configuration constants.
const (
	defaultContacts = 100
	defaultWorkers  = 2 // multiplier for runtime.NumCPU()
	defaultTimeout  = 10 * time.Second
	defaultRunLimit = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		contacts = flag.Int("contacts", defaultContacts, "Number of contacts to create")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		cleanup  = flag.Bool("cleanup", false, "Delete the created contacts when done")
		logFile  = flag.String("log", "", "Also write logs to this file")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	closer, err := seed.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	config := &seed.Config{
		BaseURL:  *baseURL,
		Contacts: *contacts,
		Workers:  *workers,
		Timeout:  *timeout,
		Cleanup:  *cleanup,
		Verbose:  *verbose,
	}

	if _, err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // deferred close is best effort
	}
}

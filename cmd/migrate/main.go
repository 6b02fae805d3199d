// Command migrate creates or updates the ledger schema.
package main

import (
	"flag"
	"fmt"

	"github.com/amirasaad/agribank/infra/initializer"
	"github.com/amirasaad/agribank/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "environment file to load before the process environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if err := initializer.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

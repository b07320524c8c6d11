// Command flowdesk-migrate opens the flowdesk database, creates any missing
// tables, and applies the additive column migrations, reporting the outcome
// of every step. The desktop application does the same work on startup;
// this tool exists so the schema can be inspected and brought up to date
// without launching the app.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/flowdeskhq/flowdesk/internal/config"
	"github.com/flowdeskhq/flowdesk/internal/database"
	"github.com/flowdeskhq/flowdesk/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flowdesk-migrate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := pflag.String("db", "", "database file (default: flowdesk.db in the working directory)")
	quiet := pflag.BoolP("quiet", "q", false, "only report failed migration steps")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	dbCfg, err := cfg.ResolveDatabase()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		dbCfg.Path = *dbPath
	}

	ctx := context.Background()
	repo, steps, err := database.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}
	}()

	failed := 0
	for _, step := range steps {
		if step.Outcome == database.MigrationFailed {
			failed++
			fmt.Fprintf(os.Stderr, "%s.%s: failed: %v\n", step.Table, step.Column, step.Err)
			continue
		}
		if !*quiet {
			fmt.Printf("%s.%s: %s\n", step.Table, step.Column, step.Outcome)
		}
	}

	if !*quiet {
		fmt.Printf("schema up to date: %s (%d steps, %d failed)\n", dbCfg.Path, len(steps), failed)
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/osse101/PrizePool_Go/internal/database"
)

const (
	migrateUp      = "up"
	migrateVersion = "version"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply the embedded migrations (up) or print the schema version (version)"
}

func (c *MigrateCommand) Run(args []string) error {
	subcmd := migrateUp
	if len(args) > 0 {
		subcmd = args[0]
	}
	if subcmd != migrateUp && subcmd != migrateVersion {
		return fmt.Errorf("unknown subcommand %q: want %s or %s", subcmd, migrateUp, migrateVersion)
	}

	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	if subcmd == migrateVersion {
		version, err := database.MigrationVersion(ctx, pool)
		if err != nil {
			return err
		}
		PrintInfo("Schema version: %d", version)
		return nil
	}

	PrintHeader("Running migrations...")
	version, err := database.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Migrations applied, schema version %d", version)
	return nil
}

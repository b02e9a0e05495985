package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/osse101/PrizePool_Go/internal/database"
)

const (
	migrateAttempts = 3
	migrateInterval = 5 * time.Second
)

type EntrypointCommand struct{}

func (c *EntrypointCommand) Name() string {
	return "entrypoint"
}

func (c *EntrypointCommand) Description() string {
	return "Container entrypoint: wait-for-db, migrate, then exec the given command"
}

func (c *EntrypointCommand) Run(args []string) error {
	argv, err := execArgs(args)
	if err != nil {
		return err
	}

	if os.Getenv("DB_HOST") == "" {
		_ = os.Setenv("DB_HOST", "db")
	}

	if err := (&WaitForDBCommand{}).Run(nil); err != nil {
		return fmt.Errorf("wait-for-db failed: %w", err)
	}
	if err := c.migrate(); err != nil {
		return err
	}

	PrintHeader("Starting " + appName + "...")
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}
	// replaces the current process
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}

func (c *EntrypointCommand) migrate() error {
	PrintHeader("Running migrations...")
	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	return retry(ctx, migrateAttempts, migrateInterval, func() error {
		version, err := database.Migrate(ctx, pool)
		if err == nil {
			PrintSuccess("Schema at version %d", version)
		}
		return err
	})
}

// execArgs strips an optional leading "--"
func execArgs(args []string) ([]string, error) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no command to execute")
	}
	return args, nil
}

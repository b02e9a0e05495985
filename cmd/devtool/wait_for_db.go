package main

import (
	"context"
	"flag"
	"fmt"
	"time"
)

const (
	defaultWaitAttempts = 30
	defaultWaitInterval = 2 * time.Second
	pingTimeout         = 5 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the database to accept connections (-attempts, -interval)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	attempts := fs.Int("attempts", defaultWaitAttempts, "number of ping attempts")
	interval := fs.Duration("interval", defaultWaitInterval, "delay between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader("Waiting for database...")
	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	err = retry(ctx, *attempts, *interval, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return pool.Ping(pingCtx)
	})
	if err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	PrintSuccess("Database is ready")
	return nil
}

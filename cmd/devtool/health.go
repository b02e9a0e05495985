package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/osse101/PrizePool_Go/internal/handler"
	"github.com/osse101/PrizePool_Go/internal/httpclient"
)

const (
	defaultAPIURL      = "http://localhost:8080"
	slowResponse       = time.Second
	healthCheckTimeout = 30 * time.Second
)

var healthPaths = []string{"/healthz", "/readyz"}

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check /healthz and /readyz of a running server (-url, -retries)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	baseURL := fs.String("url", envOr("API_URL", defaultAPIURL), "server base URL")
	retries := fs.Int("retries", 3, "retries on 5xx or connection errors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", *baseURL))

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	client := httpclient.New(*baseURL, httpclient.WithRetries(*retries, 500*time.Millisecond))
	return checkHealth(ctx, client)
}

func checkHealth(ctx context.Context, client *httpclient.Client) error {
	for _, path := range healthPaths {
		start := time.Now()
		var resp handler.HealthResponse
		if err := client.GetJSON(ctx, path, nil, &resp); err != nil {
			PrintError("%s failed: %v", path, err)
			return fmt.Errorf("%s: %w", path, err)
		}
		elapsed := time.Since(start)

		if elapsed > slowResponse {
			PrintWarning("%s is %s but slow (%v)", path, resp.Status, elapsed)
			continue
		}
		PrintSuccess("%s is %s (%v)", path, resp.Status, elapsed)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

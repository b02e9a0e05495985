package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/PrizePool_Go/internal/concurrency"
	"github.com/osse101/PrizePool_Go/internal/contest"
	"github.com/osse101/PrizePool_Go/internal/database/postgres"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/utils"
	"github.com/osse101/PrizePool_Go/internal/validation"
)

// seedFile is the document validated by validation.SchemaContestSeed
type seedFile struct {
	Contests []seedContest `json:"contests"`
}

type seedContest struct {
	domain.Contest
	Publish bool `json:"publish"`
}

type seedResult struct {
	ID     uuid.UUID            `json:"id"`
	Name   string               `json:"name"`
	Status domain.ContestStatus `json:"status"`
	Slots  int                  `json:"slots"`
}

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Create contests from a JSON file: seed [-dry-run] [-out report.json] <file>"
}

func (c *SeedCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "validate the file without touching the database")
	outPath := fs.String("out", "", "write the created contests to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one seed file required")
	}

	PrintHeader("Seeding contests...")
	seed, err := loadSeedFile(fs.Arg(0), validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	PrintInfo("%d contest(s) in %s", len(seed.Contests), fs.Arg(0))
	if *dryRun {
		PrintSuccess("Seed file is valid")
		return nil
	}

	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := contest.NewService(postgres.NewContestRepository(pool), concurrency.NewLockManager(), nil)
	results, err := seedContests(context.Background(), svc, seed.Contests)
	if err != nil {
		return err
	}

	if *outPath != "" {
		if err := utils.SaveJSON(*outPath, results); err != nil {
			return err
		}
		PrintInfo("Report written to %s", *outPath)
	}
	PrintSuccess("Seeded %d contest(s)", len(results))
	return nil
}

// loadSeedFile checks the file against the seed schema before decoding it
func loadSeedFile(path string, v validation.SchemaValidator) (*seedFile, error) {
	if err := v.ValidateFile(path, validation.SchemaContestSeed); err != nil {
		return nil, err
	}
	var seed seedFile
	if err := utils.LoadJSON(path, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// seedContests creates each contest and publishes the ones that ask for it.
// It stops at the first failure and returns what was created so far.
func seedContests(ctx context.Context, svc contest.Service, contests []seedContest) ([]seedResult, error) {
	results := make([]seedResult, 0, len(contests))
	for i := range contests {
		entry := contests[i]
		c := entry.Contest

		created, err := svc.CreateContest(ctx, &c)
		if err != nil {
			return results, fmt.Errorf("contest %q: %w", entry.Name, err)
		}
		if entry.Publish {
			if created, err = svc.TogglePublish(ctx, created.ID); err != nil {
				return results, fmt.Errorf("publish %q: %w", entry.Name, err)
			}
		}

		PrintSuccess("%s %s (%s, %d slots)", created.ID, created.Name, created.Status, len(created.GeneratedPredictions))
		results = append(results, seedResult{
			ID:     created.ID,
			Name:   created.Name,
			Status: created.Status,
			Slots:  len(created.GeneratedPredictions),
		})
	}
	return results, nil
}

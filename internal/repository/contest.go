package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// ContestFilter narrows contest listings. Soft-deleted contests are excluded
// unless IncludeDeleted is set.
type ContestFilter struct {
	Status         *domain.ContestStatus
	Category       string
	IncludeDeleted bool
	Limit          int
}

// Contest defines the interface for contest persistence.
// GetContest returns (nil, nil) when the contest does not exist.
type Contest interface {
	CreateContest(ctx context.Context, contest *domain.Contest) error
	GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error)
	ListContests(ctx context.Context, filter ContestFilter) ([]domain.Contest, error)
	ListActiveContestsEndingBefore(ctx context.Context, before time.Time) ([]domain.Contest, error)

	// ReplacePredictions swaps the full slot list. It fails with
	// domain.ErrRegenerationLocked when the contest is no longer Draft, or is Active with entries.
	ReplacePredictions(ctx context.Context, contestID uuid.UUID, predictions []domain.GeneratedPrediction) error

	// Status compare-and-set helpers return the number of rows changed
	PublishContest(ctx context.Context, id uuid.UUID) (int64, error)
	UnpublishContest(ctx context.Context, id uuid.UUID) (int64, error)
	SoftDeleteContest(ctx context.Context, id uuid.UUID) (int64, error)
}

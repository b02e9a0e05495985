package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PrizePool_Go/internal/concurrency"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/prediction"
	"github.com/osse101/PrizePool_Go/internal/repository"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// Service defines the interface for contest management
type Service interface {
	CreateContest(ctx context.Context, contest *domain.Contest) (*domain.Contest, error)
	GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error)
	ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error)
	GeneratePredictions(ctx context.Context, id uuid.UUID) (*domain.Contest, error)
	TogglePublish(ctx context.Context, id uuid.UUID) (*domain.Contest, error)
	DeleteContest(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      repository.Contest
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new contest service. The lock manager should be the one
// shared with settlement so publish toggles and settlement never interleave.
func NewService(repo repository.Contest, locks *concurrency.LockManager, publisher event.Publisher) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateContest validates the configuration, generates the initial slots and stores the contest as Draft
func (s *service) CreateContest(ctx context.Context, c *domain.Contest) (*domain.Contest, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateContestCalled, "name", c.Name, "category", c.Category)

	normalize(c)
	if err := validateContest(c); err != nil {
		return nil, err
	}

	result, err := prediction.Generate(c.RangeConfig(), c.PricingPolicy())
	if err != nil {
		return nil, err
	}
	if len(result.Skipped) > 0 {
		log.Warn(LogMsgSlotsSkipped, "skipped", len(result.Skipped))
	}

	now := s.now().UTC()
	c.ID = uuid.New()
	c.Status = domain.ContestStatusDraft
	c.GeneratedPredictions = result.Predictions
	c.TotalEntries = 0
	c.Results = domain.ContestResults{WinningOrderIDs: []uuid.UUID{}, Winners: []domain.Winner{}}
	c.IsDeleted = false
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.CreateContest(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateContest, err)
	}

	log.Info(LogMsgContestCreated, "contestID", c.ID, "slots", len(c.GeneratedPredictions))
	s.publish(ctx, event.NewContestCreatedEvent(c))
	return c, nil
}

func (s *service) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	c, err := s.repo.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if c == nil || c.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, id)
	}
	return c, nil
}

func (s *service) ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	filter.Category = utils.NormalizeCategory(filter.Category)
	filter.Limit = utils.ClampLimit(filter.Limit, domain.DefaultListLimit, domain.MaxListLimit)

	contests, err := s.repo.ListContests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListContests, err)
	}
	return contests, nil
}

// GeneratePredictions replaces the contest's slots with a fresh generation run.
// Regeneration stops once any entry has been sold.
func (s *service) GeneratePredictions(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	unlock := s.locks.Lock(concurrency.ContestKey(id.String()))
	defer unlock()

	c, err := s.GetContest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanRegenerate() {
		return nil, fmt.Errorf("%w: contest %s is %s with %d entries", domain.ErrRegenerationLocked, id, c.Status, c.TotalEntries)
	}

	result, err := prediction.Generate(c.RangeConfig(), c.PricingPolicy())
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplacePredictions(ctx, id, result.Predictions); err != nil {
		if errors.Is(err, domain.ErrRegenerationLocked) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToReplaceSlots, err)
	}

	c.GeneratedPredictions = result.Predictions
	c.UpdatedAt = s.now().UTC()
	logger.FromContext(ctx).Info(LogMsgPredictionsGenerated,
		"contestID", id, "slots", len(result.Predictions), "skipped", len(result.Skipped))
	return c, nil
}

// TogglePublish moves Draft to Active, or Active back to Draft while nobody has bought in
func (s *service) TogglePublish(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	unlock := s.locks.Lock(concurrency.ContestKey(id.String()))
	defer unlock()

	c, err := s.GetContest(ctx, id)
	if err != nil {
		return nil, err
	}

	switch c.Status {
	case domain.ContestStatusDraft:
		return s.publishContest(ctx, c)
	case domain.ContestStatusActive:
		return s.unpublishContest(ctx, c)
	default:
		return nil, fmt.Errorf("%w: contest %s is %s", domain.ErrInvalidContestState, id, c.Status)
	}
}

func (s *service) publishContest(ctx context.Context, c *domain.Contest) (*domain.Contest, error) {
	if len(c.GeneratedPredictions) == 0 {
		return nil, fmt.Errorf("%w: contest %s has no prediction slots", domain.ErrCannotPublish, c.ID)
	}
	if c.HasEnded(s.now()) {
		return nil, fmt.Errorf("%w: contest %s end time has passed", domain.ErrCannotPublish, c.ID)
	}

	rows, err := s.repo.PublishContest(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToPublish, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: contest %s is no longer a draft", domain.ErrInvalidContestState, c.ID)
	}

	c.Status = domain.ContestStatusActive
	c.UpdatedAt = s.now().UTC()
	logger.FromContext(ctx).Info(LogMsgContestPublished, "contestID", c.ID)
	s.publish(ctx, event.NewContestPublishedEvent(c))
	return c, nil
}

func (s *service) unpublishContest(ctx context.Context, c *domain.Contest) (*domain.Contest, error) {
	if c.TotalEntries > 0 {
		return nil, fmt.Errorf("%w: contest %s already has %d entries", domain.ErrCannotPublish, c.ID, c.TotalEntries)
	}

	rows, err := s.repo.UnpublishContest(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToUnpublish, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: contest %s changed while unpublishing", domain.ErrCannotPublish, c.ID)
	}

	c.Status = domain.ContestStatusDraft
	c.UpdatedAt = s.now().UTC()
	logger.FromContext(ctx).Info(LogMsgContestUnpublished, "contestID", c.ID)
	s.publish(ctx, event.NewContestUnpublishedEvent(c))
	return c, nil
}

// DeleteContest soft-deletes a contest that is neither completed nor holding paid entries
func (s *service) DeleteContest(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(concurrency.ContestKey(id.String()))
	defer unlock()

	c, err := s.GetContest(ctx, id)
	if err != nil {
		return err
	}
	if c.Status == domain.ContestStatusCompleted {
		return fmt.Errorf("%w: %s", domain.ErrContestCompleted, id)
	}
	if c.Status == domain.ContestStatusActive && c.TotalEntries > 0 {
		return fmt.Errorf("%w: contest %s has %d paid entries", domain.ErrInvalidContestState, id, c.TotalEntries)
	}

	rows, err := s.repo.SoftDeleteContest(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDeleteContest, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", domain.ErrContestNotFound, id)
	}

	logger.FromContext(ctx).Info(LogMsgContestDeleted, "contestID", id)
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		logger.FromContext(ctx).Warn(LogMsgPublisherUnavailable, "type", evt.Type)
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

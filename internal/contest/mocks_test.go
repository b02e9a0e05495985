package contest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateContest(ctx context.Context, c *domain.Contest) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contest), args.Error(1)
}

func (m *MockRepository) ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *MockRepository) ListActiveContestsEndingBefore(ctx context.Context, before time.Time) ([]domain.Contest, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *MockRepository) ReplacePredictions(ctx context.Context, contestID uuid.UUID, predictions []domain.GeneratedPrediction) error {
	return m.Called(ctx, contestID, predictions).Error(0)
}

func (m *MockRepository) PublishContest(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UnpublishContest(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SoftDeleteContest(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]event.Type, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

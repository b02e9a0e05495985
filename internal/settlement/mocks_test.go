package settlement

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contest), args.Error(1)
}

func (m *MockRepository) ListEligibleOrders(ctx context.Context, contestID uuid.UUID) ([]domain.Order, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SettlementTx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) MarkContestSettled(ctx context.Context, contestID uuid.UUID, results domain.ContestResults) (int64, error) {
	args := m.Called(ctx, contestID, results)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) UpdateOrderResults(ctx context.Context, settlements []domain.OrderSettlement) error {
	return m.Called(ctx, settlements).Error(0)
}

func (m *MockTx) CreditLedger(ctx context.Context, entries []domain.LedgerEntry) error {
	return m.Called(ctx, entries).Error(0)
}

type MockResultSource struct {
	mock.Mock
}

func (m *MockResultSource) FetchActualValue(ctx context.Context, contest *domain.Contest) (decimal.Decimal, error) {
	args := m.Called(ctx, contest)
	return args.Get(0).(decimal.Decimal), args.Error(1)
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

func (p *recordingPublisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event{}, p.events...)
}

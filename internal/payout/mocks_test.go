package payout

import (
	"context"
	"sync"
	"time"

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

func (m *MockRepository) GetPayout(ctx context.Context, id uuid.UUID) (*domain.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *MockRepository) UpdatePayoutStatus(ctx context.Context, payout *domain.Payout) error {
	return m.Called(ctx, payout).Error(0)
}

func (m *MockRepository) MarkPayoutSubmitted(ctx context.Context, id uuid.UUID, processorPayoutID string) (int64, error) {
	args := m.Called(ctx, id, processorPayoutID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListUnsubmittedPayouts(ctx context.Context, before time.Time, limit int) ([]domain.Payout, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payout), args.Error(1)
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRepository) BeginPayoutTx(ctx context.Context) (repository.PayoutTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PayoutTx), args.Error(1)
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

func (m *MockTx) DebitLedger(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) CreditLedger(ctx context.Context, entry domain.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockTx) CreatePayout(ctx context.Context, payout *domain.Payout) error {
	return m.Called(ctx, payout).Error(0)
}

func (m *MockTx) UpdatePayoutStatusIfMatches(ctx context.Context, payout *domain.Payout, expected domain.PayoutStatus) (int64, error) {
	args := m.Called(ctx, payout, expected)
	return args.Get(0).(int64), args.Error(1)
}

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreatePayout(ctx context.Context, req ProcessorRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) GetPayoutStatus(ctx context.Context, processorPayoutID string) (domain.PayoutStatus, error) {
	args := m.Called(ctx, processorPayoutID)
	return args.Get(0).(domain.PayoutStatus), args.Error(1)
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

type MockService struct {
	mock.Mock
	Service
}

func (m *MockService) ReconcilePayouts(ctx context.Context, before time.Time) (*ReconcileReport, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReconcileReport), args.Error(1)
}

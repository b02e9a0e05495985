package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/repository"
	"github.com/osse101/PrizePool_Go/internal/settlement"
)

type MockContestLister struct {
	mock.Mock
}

func (m *MockContestLister) ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *MockContestLister) ListActiveContestsEndingBefore(ctx context.Context, before time.Time) ([]domain.Contest, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contest), args.Error(1)
}

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) SettleContest(ctx context.Context, contestID uuid.UUID, manualValue *decimal.Decimal) (*settlement.Report, error) {
	args := m.Called(ctx, contestID, manualValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Report), args.Error(1)
}

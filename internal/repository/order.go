package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// Order defines the interface for order persistence.
// GetOrder returns (nil, nil) when the order does not exist.
type Order interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.OrderStatus) (int64, error)

	// Contest reads used when validating a purchase
	GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error)

	BeginOrderTx(ctx context.Context) (OrderTx, error)
}

// OrderTx groups the writes of one payment confirmation
type OrderTx interface {
	Tx // Commit, Rollback

	// ConfirmOrder moves a pending order to processing and records the payment reference.
	// Zero rows means the order was not pending.
	ConfirmOrder(ctx context.Context, id uuid.UUID, paymentReference string) (int64, error)

	// IncrementSlotEntries adds one entry to a slot only while it has capacity.
	// Zero rows means the slot is full or does not exist.
	IncrementSlotEntries(ctx context.Context, contestID uuid.UUID, tierID string) (int64, error)

	IncrementContestEntries(ctx context.Context, contestID uuid.UUID, n int) error
}

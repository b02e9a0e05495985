package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

const orderColumns = `order_id, user_id, contest_id, predictions, custom_predictions, total_amount::text,
	status, payment_reference, result, is_deleted, created_at, updated_at`

const (
	insertOrderSQL = `
		INSERT INTO orders (
			order_id, user_id, contest_id, predictions, custom_predictions, total_amount,
			status, payment_reference, created_at, updated_at
		)
		SELECT $1::uuid, $2::text, $3::uuid, $4::jsonb, $5::jsonb, $6::numeric,
			$7::text, $8::text, $9::timestamptz, $10::timestamptz
		WHERE EXISTS (
			SELECT 1 FROM contests
			WHERE contest_id = $3 AND status = 'Active' AND NOT prize_distributed AND NOT is_deleted
		)`

	updateOrderStatusIfMatchesSQL = `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = $2 AND NOT is_deleted`

	confirmOrderSQL = `
		UPDATE orders SET status = 'processing', payment_reference = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending' AND NOT is_deleted`

	incrementSlotEntriesSQL = `
		UPDATE contest_predictions SET current_entries = current_entries + 1
		WHERE contest_id = $1 AND tier_id = $2 AND current_entries < max_entries`

	incrementContestEntriesSQL = `
		UPDATE contests SET total_entries = total_entries + $2, updated_at = NOW()
		WHERE contest_id = $1`
)

// OrderRepository implements repository.Order for PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ repository.Order = (*OrderRepository)(nil)

// CreateOrder inserts a new order
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	preds, err := marshalJSON("predictions", nonNilPredictions(order.Predictions))
	if err != nil {
		return err
	}
	custom, err := marshalJSON("custom_predictions", nonNilPredictions(order.CustomPredictions))
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, insertOrderSQL,
		order.ID, order.UserID, order.ContestID, preds, custom, numericParam(order.TotalAmount),
		string(order.Status), order.PaymentReference, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: order %s already exists", domain.ErrInvalidInput, order.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertOrder, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contest %s", domain.ErrContestNotActive, order.ContestID)
	}
	return nil
}

// GetOrder returns the order, or (nil, nil) when it does not exist
func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOrder, err)
	}
	return order, nil
}

// ListOrders returns non-deleted orders, newest first
func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	where := []string{"NOT is_deleted"}
	var args []any
	if filter.ContestID != nil {
		args = append(args, *filter.ContestID)
		where = append(where, fmt.Sprintf("contest_id = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	args = append(args, clampLimit(filter.Limit))

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY created_at DESC, order_id LIMIT $%d`, len(args))

	return queryOrders(ctx, r.db, query, args...)
}

// UpdateOrderStatusIfMatches moves an order between statuses only while it holds the expected one
func (r *OrderRepository) UpdateOrderStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.OrderStatus) (int64, error) {
	tag, err := r.db.Exec(ctx, updateOrderStatusIfMatchesSQL, id, string(expected), string(next))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrder, err)
	}
	return tag.RowsAffected(), nil
}

// GetContest returns the contest an order is placed against
func (r *OrderRepository) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	return getContest(ctx, r.db, id)
}

// BeginOrderTx starts the transaction of a payment confirmation
func (r *OrderRepository) BeginOrderTx(ctx context.Context) (repository.OrderTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &orderTx{txWrapper: txWrapper{tx: tx}}, nil
}

type orderTx struct {
	txWrapper
}

func (t *orderTx) ConfirmOrder(ctx context.Context, id uuid.UUID, paymentReference string) (int64, error) {
	tag, err := t.tx.Exec(ctx, confirmOrderSQL, id, paymentReference)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrder, err)
	}
	return tag.RowsAffected(), nil
}

func (t *orderTx) IncrementSlotEntries(ctx context.Context, contestID uuid.UUID, tierID string) (int64, error) {
	tag, err := t.tx.Exec(ctx, incrementSlotEntriesSQL, contestID, tierID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToIncrementSlot, err)
	}
	return tag.RowsAffected(), nil
}

func (t *orderTx) IncrementContestEntries(ctx context.Context, contestID uuid.UUID, n int) error {
	if _, err := t.tx.Exec(ctx, incrementContestEntriesSQL, contestID, n); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToIncrementTotal, err)
	}
	return nil
}

func queryOrders(ctx context.Context, q querier, query string, args ...any) ([]domain.Order, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                     domain.Order
		preds, custom, result []byte
		total, status         string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.ContestID, &preds, &custom, &total,
		&status, &o.PaymentReference, &result, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = domain.OrderStatus(status)
	if o.TotalAmount, err = parseNumeric(total); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("predictions", preds, &o.Predictions); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("custom_predictions", custom, &o.CustomPredictions); err != nil {
		return nil, err
	}
	if len(result) > 0 {
		o.Result = &domain.OrderResult{}
		if err := unmarshalJSON("result", result, o.Result); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

func nonNilPredictions(p []domain.OrderPrediction) []domain.OrderPrediction {
	if p == nil {
		return []domain.OrderPrediction{}
	}
	return p
}

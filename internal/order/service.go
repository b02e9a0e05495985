package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/concurrency"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/repository"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// PlaceOrderInput is a purchase request: generated slots by tier id plus free-form values
type PlaceOrderInput struct {
	UserID       string
	ContestID    uuid.UUID
	TierIDs      []string
	CustomValues []decimal.Decimal
}

// Service defines the interface for order operations
type Service interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, paymentReference string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type service struct {
	repo      repository.Order
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new order service. Pass the lock manager shared with
// settlement so no confirmation lands while a contest is being settled.
func NewService(repo repository.Order, locks *concurrency.LockManager, publisher event.Publisher) Service {
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

// PlaceOrder prices the requested predictions and stores a pending order.
// Capacity is only reserved when the payment is confirmed.
func (s *service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceOrderCalled, "userID", in.UserID, "contestID", in.ContestID,
		"slots", len(in.TierIDs), "custom", len(in.CustomValues))

	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	// Held until the insert so settlement cannot complete the contest in between
	unlock := s.locks.Lock(concurrency.ContestKey(in.ContestID.String()))
	defer unlock()

	contest, err := s.activeContest(ctx, in.ContestID)
	if err != nil {
		return nil, err
	}
	if contest.HasEnded(s.now()) {
		return nil, fmt.Errorf("%w: contest %s has ended", domain.ErrContestNotActive, contest.ID)
	}

	predictions, err := pickSlots(contest, in.TierIDs)
	if err != nil {
		return nil, err
	}
	custom, err := priceCustomValues(contest, in.CustomValues)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range predictions {
		total = total.Add(p.Price)
	}
	for _, p := range custom {
		total = total.Add(p.Price)
	}

	now := s.now().UTC()
	o := &domain.Order{
		ID:                uuid.New(),
		UserID:            strings.TrimSpace(in.UserID),
		ContestID:         contest.ID,
		Predictions:       predictions,
		CustomPredictions: custom,
		TotalAmount:       total,
		Status:            domain.OrderStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreate, err)
	}

	log.Info(LogMsgOrderPlaced, "orderID", o.ID, "total", total)
	s.publish(ctx, event.NewOrderPlacedEvent(o))
	return o, nil
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	n := len(in.TierIDs) + len(in.CustomValues)
	if n == 0 {
		return fmt.Errorf("%w: an order needs at least one prediction", domain.ErrInvalidInput)
	}
	if n > MaxPredictionsPerOrder {
		return fmt.Errorf("%w: at most %d predictions per order", domain.ErrInvalidInput, MaxPredictionsPerOrder)
	}
	seen := make(map[string]bool, len(in.TierIDs))
	for _, id := range in.TierIDs {
		if seen[id] {
			return fmt.Errorf("%w: slot %s listed twice", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return nil
}

// activeContest loads a contest that is Active and not yet settled
func (s *service) activeContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	contest, err := s.repo.GetContest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil || contest.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, id)
	}
	if contest.Status != domain.ContestStatusActive || contest.Results.PrizeDistributed {
		return nil, fmt.Errorf("%w: contest %s is %s", domain.ErrContestNotActive, id, contest.Status)
	}
	return contest, nil
}

func pickSlots(contest *domain.Contest, tierIDs []string) ([]domain.OrderPrediction, error) {
	out := make([]domain.OrderPrediction, 0, len(tierIDs))
	for _, id := range tierIDs {
		slot, ok := contest.FindPrediction(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, id)
		}
		if !slot.IsAvailable || slot.CurrentEntries >= slot.MaxEntries {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotFull, id)
		}
		out = append(out, domain.OrderPrediction{TierID: slot.TierID, Value: slot.Value, Price: slot.Price})
	}
	return out, nil
}

// priceCustomValues accepts values inside [min, max] that the pricing policy covers
func priceCustomValues(contest *domain.Contest, values []decimal.Decimal) ([]domain.OrderPrediction, error) {
	out := make([]domain.OrderPrediction, 0, len(values))
	policy := contest.PricingPolicy()
	for _, v := range values {
		if v.LessThan(contest.MinPrediction) || v.GreaterThan(contest.MaxPrediction) {
			return nil, fmt.Errorf("%w: %s not within [%s, %s]", domain.ErrPredictionOutRange, v, contest.MinPrediction, contest.MaxPrediction)
		}
		price, ok := policy.PriceFor(v)
		if !ok {
			return nil, fmt.Errorf("%w: no pricing band covers %s", domain.ErrPredictionOutRange, v)
		}
		out = append(out, domain.OrderPrediction{Value: v, Price: price})
	}
	return out, nil
}

// ConfirmPayment moves a pending order to processing and reserves one entry in every
// slot it bought, all in one transaction. A full slot rolls the whole confirmation back.
func (s *service) ConfirmPayment(ctx context.Context, orderID uuid.UUID, paymentReference string) (*domain.Order, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgConfirmPaymentCalled, "orderID", orderID)

	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", domain.ErrInvalidInput)
	}

	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrInvalidOrderState, orderID, o.Status)
	}

	unlock := s.locks.Lock(concurrency.ContestKey(o.ContestID.String()))
	defer unlock()

	// Payments that arrive after the end time still count until settlement completes the contest
	if _, err := s.activeContest(ctx, o.ContestID); err != nil {
		return nil, err
	}

	if err := s.reserve(ctx, o, paymentReference); err != nil {
		return nil, err
	}

	o.Status = domain.OrderStatusProcessing
	o.PaymentReference = paymentReference
	o.UpdatedAt = s.now().UTC()

	log.Info(LogMsgOrderConfirmed, "orderID", o.ID, "contestID", o.ContestID)
	s.publish(ctx, event.NewOrderConfirmedEvent(o))
	return o, nil
}

func (s *service) reserve(ctx context.Context, o *domain.Order, paymentReference string) error {
	tx, err := s.repo.BeginOrderTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.ConfirmOrder(ctx, o.ID, paymentReference)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToConfirm, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: order %s is no longer pending", domain.ErrInvalidOrderState, o.ID)
	}

	for _, p := range o.Predictions {
		rows, err := tx.IncrementSlotEntries(ctx, o.ContestID, p.TierID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToReserve, err)
		}
		if rows == 0 {
			logger.FromContext(ctx).Warn(LogMsgSlotFull, "orderID", o.ID, "tierID", p.TierID)
			return fmt.Errorf("%w: %s", domain.ErrSlotFull, p.TierID)
		}
	}

	entries := len(o.Predictions) + len(o.CustomPredictions)
	if err := tx.IncrementContestEntries(ctx, o.ContestID, entries); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCount, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

// CancelOrder cancels an order that has not been paid
func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(concurrency.ContestKey(o.ContestID.String()))
	defer unlock()

	rows, err := s.repo.UpdateOrderStatusIfMatches(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCancel, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled, order %s is %s", domain.ErrInvalidOrderState, orderID, o.Status)
	}

	o.Status = domain.OrderStatusCancelled
	o.UpdatedAt = s.now().UTC()
	logger.FromContext(ctx).Info(LogMsgOrderCancelled, "orderID", orderID)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetOrder, err)
	}
	if o == nil || o.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	filter.UserID = strings.TrimSpace(filter.UserID)
	if filter.ContestID == nil && filter.UserID == "" {
		return nil, fmt.Errorf("%w: filter by contest or user", domain.ErrInvalidInput)
	}
	filter.Limit = utils.ClampLimit(filter.Limit, domain.DefaultListLimit, domain.MaxListLimit)

	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToList, err)
	}
	return orders, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		logger.FromContext(ctx).Warn(LogMsgPublisherUnavailable, "type", evt.Type)
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

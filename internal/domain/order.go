package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the state of a purchase
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusWon        OrderStatus = "won"
	OrderStatusLost       OrderStatus = "lost"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// OrderPrediction is one predicted value inside an order.
// TierID is empty for custom predictions.
type OrderPrediction struct {
	TierID string          `json:"tier_id,omitempty"`
	Value  decimal.Decimal `json:"value"`
	Price  decimal.Decimal `json:"price"`
}

// OrderResult is written by settlement only
type OrderResult struct {
	Place           int             `json:"place"`
	PredictionValue decimal.Decimal `json:"prediction_value"`
	ActualValue     decimal.Decimal `json:"actual_value"`
	Difference      decimal.Decimal `json:"difference"`
	PrizeAmount     decimal.Decimal `json:"prize_amount"`
	Percentage      decimal.Decimal `json:"percentage"`
}

// Order is one purchase by one user against one contest
type Order struct {
	ID                uuid.UUID         `json:"id"`
	UserID            string            `json:"user_id"`
	ContestID         uuid.UUID         `json:"contest_id"`
	Predictions       []OrderPrediction `json:"predictions"`
	CustomPredictions []OrderPrediction `json:"custom_prediction"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	Status            OrderStatus       `json:"status"`
	PaymentReference  string            `json:"payment_reference,omitempty"`
	Result            *OrderResult      `json:"result,omitempty"`
	IsDeleted         bool              `json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// AllPredictions merges slot and custom predictions in that order
func (o *Order) AllPredictions() []OrderPrediction {
	all := make([]OrderPrediction, 0, len(o.Predictions)+len(o.CustomPredictions))
	all = append(all, o.Predictions...)
	all = append(all, o.CustomPredictions...)
	return all
}

// IsEligible reports whether the order participates in settlement
func (o *Order) IsEligible() bool {
	return !o.IsDeleted && o.Status != OrderStatusCancelled
}

// OrderSettlement is the terminal status and result for one order
type OrderSettlement struct {
	OrderID uuid.UUID   `json:"order_id"`
	UserID  string      `json:"user_id"`
	Status  OrderStatus `json:"status"`
	Result  OrderResult `json:"result"`
}

// OrderFilter narrows order listings
type OrderFilter struct {
	ContestID *uuid.UUID
	UserID    string
	Limit     int
}

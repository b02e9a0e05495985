package domain

// ContestPublishedPayload fires when a contest starts accepting orders
type ContestPublishedPayload struct {
	ContestID string `json:"contest_id"`
	Name      string `json:"name"`
	EndTime   int64  `json:"end_time,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ContestSettledPayload is the event payload for contest.settled events
type ContestSettledPayload struct {
	ContestID     string   `json:"contest_id"`
	ActualValue   string   `json:"actual_value"`
	PrizePool     string   `json:"prize_pool"`
	TotalAwarded  string   `json:"total_awarded"`
	WinnerCount   int      `json:"winner_count"`
	OrderCount    int      `json:"order_count"`
	WinningOrders []string `json:"winning_orders"`
	Timestamp     int64    `json:"timestamp"`
}

// OrderPlacedPayload is the event payload for order.placed events
type OrderPlacedPayload struct {
	OrderID     string `json:"order_id"`
	ContestID   string `json:"contest_id"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
	Timestamp   int64  `json:"timestamp"`
}

// OrderConfirmedPayload is the event payload for order.confirmed events
type OrderConfirmedPayload struct {
	OrderID   string `json:"order_id"`
	ContestID string `json:"contest_id"`
	Entries   int    `json:"entries"`
	Timestamp int64  `json:"timestamp"`
}

// PayoutPayload is shared by payout.requested and payout.failed events
type PayoutPayload struct {
	PayoutID  string `json:"payout_id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Method    string `json:"method"`
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

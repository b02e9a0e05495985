package sse

// ContestStatusPayload is sent when a contest is published or unpublished
type ContestStatusPayload struct {
	ContestID string `json:"contest_id"`
	Name      string `json:"name"`
	EndTime   int64  `json:"end_time,omitempty"`
}

// ContestSettledPayload summarizes a settlement for live viewers.
// Winning order ids are left out; clients fetch results for detail.
type ContestSettledPayload struct {
	ContestID    string `json:"contest_id"`
	ActualValue  string `json:"actual_value"`
	PrizePool    string `json:"prize_pool"`
	TotalAwarded string `json:"total_awarded"`
	WinnerCount  int    `json:"winner_count"`
	OrderCount   int    `json:"order_count"`
}

// EntriesConfirmedPayload is sent when a confirmed order fills slots
type EntriesConfirmedPayload struct {
	ContestID string `json:"contest_id"`
	OrderID   string `json:"order_id"`
	Entries   int    `json:"entries"`
}

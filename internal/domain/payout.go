package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutMethod selects the processor speed tier, which drives the fee
type PayoutMethod string

const (
	PayoutMethodInstant  PayoutMethod = "instant"
	PayoutMethodStandard PayoutMethod = "standard"
)

// PayoutStatus tracks a payout through the processor
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusPaid       PayoutStatus = "paid"
	PayoutStatusFailed     PayoutStatus = "failed"
	PayoutStatusRefunded   PayoutStatus = "refunded"
)

// IsTerminal reports whether the payout will not change again
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusPaid || s == PayoutStatusFailed || s == PayoutStatusRefunded
}

// Payout is a withdrawal of ledger winnings to a user's card
type Payout struct {
	ID                uuid.UUID       `json:"id"`
	UserID            string          `json:"user_id"`
	Amount            decimal.Decimal `json:"amount"`
	Fee               decimal.Decimal `json:"fee"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	Currency          string          `json:"currency"`
	Method            PayoutMethod    `json:"method"`
	DestinationCard   string          `json:"destination_card"`
	ProcessorPayoutID string          `json:"processor_payout_id,omitempty"`
	Status            PayoutStatus    `json:"status"`
	FailureReason     string          `json:"failure_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LedgerEntryReason labels a balance movement
type LedgerEntryReason string

const (
	LedgerReasonPrize        LedgerEntryReason = "prize"
	LedgerReasonPayout       LedgerEntryReason = "payout"
	LedgerReasonPayoutRefund LedgerEntryReason = "payout_refund"
)

// LedgerEntry is one credit or debit against a user's balance
type LedgerEntry struct {
	UserID    string            `json:"user_id"`
	Amount    decimal.Decimal   `json:"amount"`
	Reason    LedgerEntryReason `json:"reason"`
	Reference string            `json:"reference"`
}

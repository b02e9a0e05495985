package payout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee schedule
var (
	instantFeeRate  = decimal.RequireFromString("0.015")
	instantFeeFixed = decimal.RequireFromString("0.5")
	standardFeeRate = decimal.RequireFromString("0.0025")
	standardFeeCap  = decimal.NewFromInt(5)
)

// Error context messages
const (
	ErrContextFailedToBeginTx      = "failed to begin payout transaction"
	ErrContextFailedToDebit        = "failed to debit ledger"
	ErrContextFailedToRecord       = "failed to record payout"
	ErrContextFailedToCommitTx     = "failed to commit payout transaction"
	ErrContextFailedToGetPayout    = "failed to get payout"
	ErrContextFailedToUpdatePayout = "failed to update payout"
	ErrContextFailedToGetBalance   = "failed to get balance"
	ErrContextFailedToRefund       = "failed to refund payout"
	ErrContextFailedToListStuck    = "failed to list unsubmitted payouts"
)

// Reconciliation
const (
	// ReconcileBatchSize caps how many stuck payouts one pass resubmits
	ReconcileBatchSize = 100
	// DefaultReconcileGrace keeps a pass away from payouts whose request is still in flight
	DefaultReconcileGrace = 5 * time.Minute
)

// Log messages
const (
	LogMsgRequestPayoutCalled  = "RequestPayout called"
	LogMsgPayoutSubmitted      = "Payout submitted to processor"
	LogMsgProcessorFailed      = "Processor rejected payout, refunding ledger"
	LogMsgRefundFailed         = "CRITICAL: payout refund failed, manual reconciliation required"
	LogMsgPayoutRefunded       = "Payout refunded to ledger"
	LogMsgRefundSkipped        = "Payout already left the expected status, refund skipped"
	LogMsgStatusUpdateFailed   = "Failed to persist processor payout id"
	LogMsgStatusRefreshed      = "Payout status refreshed"
	LogMsgPublisherUnavailable = "Failed to publish payout event"
	LogMsgReconcileDeferred    = "Processor unreachable, payout left for next reconciliation"
	LogMsgReconcileCompleted   = "Payout reconciliation completed"
	LogMsgReconcileJobFailed   = "Payout reconciliation job failed"
)

// Processor API paths and header
const (
	ProcessorPayoutsPath  = "/v1/payouts"
	ProcessorAPIKeyHeader = "Authorization"
	ProcessorAPIKeyPrefix = "Bearer "
	MetadataKeyPayoutID   = "payout_id"
	MetadataKeyUserID     = "user_id"
)

// Processor status values
const (
	processorStatusPending   = "pending"
	processorStatusInTransit = "in_transit"
	processorStatusPaid      = "paid"
	processorStatusFailed    = "failed"
	processorStatusCanceled  = "canceled"
)

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Generation errors
	ErrMsgInvalidRange       = "invalid prediction range"
	ErrMsgInvalidPricingTier = "invalid pricing tier"

	// Contest errors
	ErrMsgContestNotFound     = "contest not found"
	ErrMsgContestNotActive    = "contest is not accepting orders"
	ErrMsgRegenerationLocked  = "predictions cannot be regenerated once entries exist"
	ErrMsgCannotPublish       = "contest cannot be published"
	ErrMsgContestCompleted    = "contest is already completed"
	ErrMsgAlreadySettled      = "contest already settled"
	ErrMsgResultUnavailable   = "actual result unavailable"
	ErrMsgInvalidContestState = "invalid contest state"

	// Order errors
	ErrMsgOrderNotFound      = "order not found"
	ErrMsgSlotNotFound       = "prediction slot not found"
	ErrMsgSlotFull           = "prediction slot is full"
	ErrMsgInvalidOrderState  = "invalid order state"
	ErrMsgPredictionOutRange = "prediction value outside contest range"

	// Payout errors
	ErrMsgPayoutNotFound       = "payout not found"
	ErrMsgPayoutFailed         = "payout failed"
	ErrMsgInvalidPayoutMethod  = "invalid payout method"
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgPayoutBelowMinimum   = "payout amount does not cover the fee"
	ErrMsgProcessorUnavailable = "payment processor unavailable"
	ErrMsgProcessorDeclined    = "payment processor declined payout"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgDeadlockDetected  = "deadlock detected"
	ErrMsgTxClosed          = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Generation errors
	ErrInvalidRange       = errors.New(ErrMsgInvalidRange)
	ErrInvalidPricingTier = errors.New(ErrMsgInvalidPricingTier)

	// Contest errors
	ErrContestNotFound     = errors.New(ErrMsgContestNotFound)
	ErrContestNotActive    = errors.New(ErrMsgContestNotActive)
	ErrRegenerationLocked  = errors.New(ErrMsgRegenerationLocked)
	ErrCannotPublish       = errors.New(ErrMsgCannotPublish)
	ErrContestCompleted    = errors.New(ErrMsgContestCompleted)
	ErrAlreadySettled      = errors.New(ErrMsgAlreadySettled)
	ErrResultUnavailable   = errors.New(ErrMsgResultUnavailable)
	ErrInvalidContestState = errors.New(ErrMsgInvalidContestState)

	// Order errors
	ErrOrderNotFound      = errors.New(ErrMsgOrderNotFound)
	ErrSlotNotFound       = errors.New(ErrMsgSlotNotFound)
	ErrSlotFull           = errors.New(ErrMsgSlotFull)
	ErrInvalidOrderState  = errors.New(ErrMsgInvalidOrderState)
	ErrPredictionOutRange = errors.New(ErrMsgPredictionOutRange)

	// Payout errors
	ErrPayoutNotFound       = errors.New(ErrMsgPayoutNotFound)
	ErrPayoutFailed         = errors.New(ErrMsgPayoutFailed)
	ErrInvalidPayoutMethod  = errors.New(ErrMsgInvalidPayoutMethod)
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrPayoutBelowMinimum   = errors.New(ErrMsgPayoutBelowMinimum)
	ErrProcessorUnavailable = errors.New(ErrMsgProcessorUnavailable)
	ErrProcessorDeclined    = errors.New(ErrMsgProcessorDeclined)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

package order

// Error context messages
const (
	ErrContextFailedToGetContest = "failed to get contest"
	ErrContextFailedToGetOrder   = "failed to get order"
	ErrContextFailedToCreate     = "failed to create order"
	ErrContextFailedToList       = "failed to list orders"
	ErrContextFailedToBeginTx    = "failed to begin order transaction"
	ErrContextFailedToConfirm    = "failed to confirm order"
	ErrContextFailedToReserve    = "failed to reserve slot"
	ErrContextFailedToCount      = "failed to update contest entries"
	ErrContextFailedToCommitTx   = "failed to commit order transaction"
	ErrContextFailedToCancel     = "failed to cancel order"
)

// Log messages
const (
	LogMsgPlaceOrderCalled     = "PlaceOrder called"
	LogMsgOrderPlaced          = "Order placed"
	LogMsgConfirmPaymentCalled = "ConfirmPayment called"
	LogMsgOrderConfirmed       = "Order confirmed"
	LogMsgSlotFull             = "Slot capacity exhausted during confirmation"
	LogMsgOrderCancelled       = "Order cancelled"
	LogMsgPublisherUnavailable = "Event publisher unavailable"
)

// MaxPredictionsPerOrder bounds slot plus custom predictions in one order
const MaxPredictionsPerOrder = 50

package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "contest.settled")
const (
	// EventTypeContestCreated is published when a contest draft is created
	EventTypeContestCreated = "contest.created"

	// EventTypeContestPublished is published when a contest goes Active
	EventTypeContestPublished = "contest.published"

	// EventTypeContestUnpublished is published when an Active contest returns to Draft
	EventTypeContestUnpublished = "contest.unpublished"

	// EventTypeContestSettled is published after a settlement transaction commits
	EventTypeContestSettled = "contest.settled"

	// EventTypeOrderPlaced is published when a pending order is recorded
	EventTypeOrderPlaced = "order.placed"

	// EventTypeOrderConfirmed is published when payment confirmation claims slot capacity
	EventTypeOrderConfirmed = "order.confirmed"

	// EventTypePayoutRequested is published when the processor accepted a payout
	EventTypePayoutRequested = "payout.requested"

	// EventTypePayoutFailed is published when a payout was refunded after a processor error
	EventTypePayoutFailed = "payout.failed"
)

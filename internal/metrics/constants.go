package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameContestsCreated   = "contests_created_total"
	MetricNameContestsPublished = "contests_published_total"
	MetricNameContestsSettled   = "contests_settled_total"
	MetricNamePrizesAwarded     = "prizes_awarded_total"
	MetricNameSettlementWinners = "settlement_winners"
	MetricNameOrdersPlaced      = "orders_placed_total"
	MetricNameOrdersConfirmed   = "orders_confirmed_total"
	MetricNameOrderRevenue      = "order_revenue_total"
	MetricNamePayoutsRequested  = "payouts_requested_total"
	MetricNamePayoutsFailed     = "payouts_failed_total"
	MetricNamePayoutAmount      = "payout_amount_total"
	MetricNameSettlementJobs    = "settlement_jobs_total"
	MetricNamePayoutReconciled  = "payout_reconciliations_total"
	MetricNameAuditPruned       = "audit_events_pruned_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextContestsCreated   = "Total number of contests created"
	HelpTextContestsPublished = "Total number of contests opened for orders"
	HelpTextContestsSettled   = "Total number of contests settled"
	HelpTextPrizesAwarded     = "Total prize money credited to winners"
	HelpTextSettlementWinners = "Number of assigned places per settled contest"
	HelpTextOrdersPlaced      = "Total number of orders placed"
	HelpTextOrdersConfirmed   = "Total number of orders whose payment was confirmed"
	HelpTextOrderRevenue      = "Total amount of placed orders"
	HelpTextPayoutsRequested  = "Total number of payouts requested"
	HelpTextPayoutsFailed     = "Total number of payouts that failed and were refunded"
	HelpTextPayoutAmount      = "Total gross amount of requested payouts"
	HelpTextSettlementJobs    = "Background settlement attempts by outcome"
	HelpTextPayoutReconciled  = "Stuck payouts handled by reconciliation, by outcome"
	HelpTextAuditPruned       = "Contest audit events removed by retention"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
)

// Settlement job outcomes
const (
	OutcomeSettled     = "settled"
	OutcomeSkipped     = "skipped"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

// Payout reconciliation outcomes
const (
	OutcomeSubmitted = "submitted"
	OutcomeRefunded  = "refunded"
	OutcomeDeferred  = "deferred"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// WinnerBuckets covers prize tables from a single place up to the largest allowed table
var WinnerBuckets = []float64{0, 1, 2, 3, 5, 10, 25, 50, 100}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
	LogMsgInvalidAmount     = "Event amount is not a decimal"
)

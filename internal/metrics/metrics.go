package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Contest Metrics
var (
	ContestsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContestsCreated,
			Help: HelpTextContestsCreated,
		},
	)

	ContestsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContestsPublished,
			Help: HelpTextContestsPublished,
		},
	)

	ContestsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContestsSettled,
			Help: HelpTextContestsSettled,
		},
	)

	PrizesAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePrizesAwarded,
			Help: HelpTextPrizesAwarded,
		},
	)

	SettlementWinners = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementWinners,
			Help:    HelpTextSettlementWinners,
			Buckets: WinnerBuckets,
		},
	)

	SettlementJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementJobs,
			Help: HelpTextSettlementJobs,
		},
		[]string{LabelOutcome},
	)

	AuditEventsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuditPruned,
			Help: HelpTextAuditPruned,
		},
	)

	PayoutReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutReconciled,
			Help: HelpTextPayoutReconciled,
		},
		[]string{LabelOutcome},
	)
)

// Order Metrics
var (
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersPlaced,
			Help: HelpTextOrdersPlaced,
		},
	)

	OrdersConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersConfirmed,
			Help: HelpTextOrdersConfirmed,
		},
	)

	OrderRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrderRevenue,
			Help: HelpTextOrderRevenue,
		},
	)
)

// Payout Metrics
var (
	PayoutsRequested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutsRequested,
			Help: HelpTextPayoutsRequested,
		},
		[]string{LabelMethod},
	)

	PayoutsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutsFailed,
			Help: HelpTextPayoutsFailed,
		},
		[]string{LabelMethod},
	)

	PayoutAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutAmount,
			Help: HelpTextPayoutAmount,
		},
	)
)

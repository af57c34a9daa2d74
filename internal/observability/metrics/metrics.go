package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

// claim results as reported by RecordClaim
const (
	ClaimPaid    = "paid"
	ClaimNoop    = "noop"
	ClaimSkipped = "skipped"
	ClaimFailed  = "failed"
)

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	// collectors are created eagerly so recording before Init is harmless
	claimCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_claims_total",
			Help: "Number of reward claims split by distributor kind and result",
		},
		[]string{"kind", "result"},
	)
	rewardsPaidCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_paid_total",
			Help: "Reward token units paid out split by distributor kind",
		},
		[]string{"kind"},
	)
	claimClampCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_claim_clamps_total",
			Help: "Number of claims whose amount was reduced, split by reason",
		},
		[]string{"reason"},
	)
	claimDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reward_claim_duration_seconds",
			Help:    "Histogram of claim durations in seconds, payout and commit included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"status"},
	)
	pendingClaimCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_claim_left_pending_total",
			Help: "Number of reserved claims that could not be settled or released",
		},
		[]string{"stage"},
	)
	stakeClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stake_client_latency_seconds",
			Help:    "Histogram of stake ledger client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)
	custodyClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "custody_client_latency_seconds",
			Help:    "Histogram of custody client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)
	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)
	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming API request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"route", "status"},
	)
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)
	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)
	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		claimCounter,
		rewardsPaidCounter,
		claimClampCounter,
		claimDuration,
		pendingClaimCounter,
		stakeClientLatency,
		custodyClientLatency,
		clientRequestDurationHistogram,
		httpRequestDurationHistogram,
		queueSendErrorCounter,
		pollerDurationHistogram,
		dbLatency,
	)
}

func status(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordClaim(kind, result string, amount uint64) {
	claimCounter.WithLabelValues(kind, result).Inc()
	if amount > 0 {
		rewardsPaidCounter.WithLabelValues(kind).Add(float64(amount))
	}
}

func RecordClaimClamp(reason string) {
	claimClampCounter.WithLabelValues(reason).Inc()
}

func RecordClaimDuration(d time.Duration, failure bool) {
	claimDuration.WithLabelValues(status(failure).String()).Observe(d.Seconds())
}

// IncClaimLeftPending counts a reserved claim stuck in pending, stage is
// "settle" when it was paid or "release" when its payout failed.
func IncClaimLeftPending(stage string) {
	pendingClaimCounter.WithLabelValues(stage).Inc()
}

func RecordStakeClientLatency(d time.Duration, method string, failure bool) {
	stakeClientLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

func RecordCustodyClientLatency(d time.Duration, method string, failure bool) {
	custodyClientLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

func RecordHttpRequestDuration(d time.Duration, route string, statusCode int) {
	httpRequestDurationHistogram.WithLabelValues(route, strconv.Itoa(statusCode)).Observe(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

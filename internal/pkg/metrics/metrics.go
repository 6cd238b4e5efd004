package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expense_store_operations_total",
		Help: "Expense store calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	storeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "expense_store_operation_duration_seconds",
		Help:    "Expense store call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Chat exchanges by outcome.",
	}, []string{"outcome"})

	chatToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_tool_calls_total",
		Help: "Tool calls dispatched by the chat loop.",
	}, []string{"tool", "outcome"})

	chatRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_rounds",
		Help:    "Tool rounds needed to answer one chat message.",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12},
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveStore starts timing a store operation. Call the returned func with
// the operation's error when it finishes.
func ObserveStore(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		storeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		storeOperations.WithLabelValues(operation, outcome(err)).Inc()
	}
}

// ChatRequest counts one chat exchange
func ChatRequest(outcome string) {
	chatRequests.WithLabelValues(outcome).Inc()
}

// ChatToolCall counts one dispatched tool call
func ChatToolCall(tool string, err error) {
	chatToolCalls.WithLabelValues(tool, outcome(err)).Inc()
}

// ChatRounds records how many tool rounds an exchange took
func ChatRounds(rounds int) {
	chatRounds.Observe(float64(rounds))
}

// HTTPRequest records one served request
func HTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

const namespace = "pickpoint"

// Metrics счётчики пункта выдачи в отдельном реестре
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latencyMS   *prometheus.HistogramVec
	created     prometheus.Counter
	transitions *prometheus.CounterVec
	commission  *prometheus.CounterVec
	withdrawals *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"handler"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders accepted at the pickup point.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status and actor kind.",
		}, []string{"status", "actor"}),
		commission: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commission_amount_total",
			Help:      "Commission credited and debited, in currency units.",
		}, []string{"target", "direction"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawn_amount_total",
			Help:      "Balance paid out, in currency units.",
		}, []string{"target"}),
	}
	m.registry.MustRegister(m.requests, m.latencyMS, m.created, m.transitions, m.commission, m.withdrawals)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware считает запросы по шаблону маршрута
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

func (m *Metrics) OrderCreated() { m.created.Inc() }

func (m *Metrics) OrderTransition(to domain.OrderStatus, actor string) {
	kind := "intern"
	switch actor {
	case domain.CuratorID:
		kind = domain.CuratorID
	case "":
		kind = "none"
	}
	m.transitions.WithLabelValues(string(to), kind).Inc()
}

func (m *Metrics) Commission(target string, amount decimal.Decimal) {
	direction := "credit"
	if amount.IsNegative() {
		direction = "debit"
	}
	m.commission.WithLabelValues(target, direction).Add(amount.Abs().InexactFloat64())
}

func (m *Metrics) Withdrawal(target string, amount decimal.Decimal) {
	m.withdrawals.WithLabelValues(target).Add(amount.InexactFloat64())
}

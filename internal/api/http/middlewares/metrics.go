package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status class",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			// расчёт скора на промахе ходит во внешний API, поэтому хвост длиннее DefBuckets
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method", "route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(64, 4, 6),
		},
		[]string{"route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// DefaultMetricsSkip: служебные маршруты, которые не учитываются (скрейп и пробы оркестратора).
var DefaultMetricsSkip = []string{"/metrics", "/liveness", "/readyness"}

// PrometheusMetrics считает запросы по маршруту (шаблону, а не фактическому пути: тикеры не
// раздувают кардинальность) и классу статуса, их длительность и размер ответа.
// Пути из skip не учитываются.
func PrometheusMetrics(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			httpResponseSize.WithLabelValues(route).Observe(float64(size))
		}
	}
}

// statusClass сворачивает статус до класса: 200 -> "2xx", 429 -> "4xx".
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}

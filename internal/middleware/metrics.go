package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noblty_requests_total",
		Help: "Total requests",
	}, []string{"endpoint"})

	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "noblty_request_seconds",
		Help: "Request latency",
	}, []string{"endpoint"})
)

// MetricsMiddleware 엔드포인트별 요청 수/지연 기록
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			// 미등록 경로는 카디널리티 보호를 위해 묶음 처리
			endpoint = "unmatched"
		}

		start := time.Now()
		c.Next()

		requestsTotal.WithLabelValues(endpoint).Inc()
		requestSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "teamtrack_http_requests_total", Help: "HTTP requests by method and status"},
		[]string{"method", "status"},
	)
	NotificationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "teamtrack_notifications_created_total", Help: "Notifications created"},
	)
	NotificationsSuppressed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "teamtrack_notifications_suppressed_total", Help: "Notification failures suppressed"},
	)
)

func Register() {
	prometheus.MustRegister(HTTPRequests, NotificationsCreated, NotificationsSuppressed)
}

// Middleware counts every request by method and status code.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		HTTPRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

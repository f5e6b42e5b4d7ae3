// Package metrics exposes HTTP request metrics on a standalone listener so
// the exporter never shares a port with the public API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec
	log    *zap.SugaredLogger
}

func NewPrometheus(log *zap.SugaredLogger) *Prometheus {
	p := &Prometheus{
		reqCnt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by status code, method and route.",
			},
			[]string{"code", "method", "path"},
		),
		reqDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by status code, method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"code", "method", "path"},
		),
		log: log,
	}
	prometheus.MustRegister(p.reqCnt, p.reqDur)
	return p
}

// Middleware records a counter and latency sample per request, labelled by
// the matched route pattern rather than the raw URL.
func (p *Prometheus) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		code := strconv.Itoa(c.Writer.Status())
		p.reqCnt.WithLabelValues(code, c.Request.Method, path).Inc()
		p.reqDur.WithLabelValues(code, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Serve starts the exporter on addr in a background goroutine.
func (p *Prometheus) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			p.log.Errorw("metrics listener stopped", "addr", addr, "err", err)
		}
	}()
}

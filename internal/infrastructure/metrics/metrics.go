package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voice_transcriber"

// Outcome label values for external calls
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// HTTP metrics, recorded by Middleware.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "path_pattern", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path_pattern"})
)

// External provider metrics, recorded by the transcription pipeline.
var (
	ExternalCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_calls_total",
		Help:      "Calls made to speech-to-text and chat completion providers.",
	}, []string{"operation", "outcome"})

	ExternalCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "external_call_duration_seconds",
		Help:      "Latency of provider calls in seconds.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"operation"})

	AudioUploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audio_upload_bytes",
		Help:      "Size of decoded audio uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KB -> 16MB
	})

	TranscriptionStatusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transcription_status_total",
		Help:      "Terminal status transitions written by the summarizer.",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ExternalCallsTotal,
		ExternalCallDuration,
		AudioUploadBytes,
		TranscriptionStatusTotal,
	)
}

// ObserveExternalCall records one provider call started at start
func ObserveExternalCall(operation string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ExternalCallsTotal.WithLabelValues(operation, outcome).Inc()
	ExternalCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Middleware records request count and latency labelled by echo's route pattern
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			pattern := c.Path()
			if pattern == "" {
				pattern = "unknown"
			}
			method := c.Request().Method

			HTTPRequestsTotal.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, pattern).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the default Prometheus registry
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

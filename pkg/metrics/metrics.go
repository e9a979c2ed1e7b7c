package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helpdesk_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Reports

	ReportBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_report_builds_total",
			Help: "Report tables built, by primary collection",
		},
		[]string{"primary"},
	)

	ReportRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpdesk_report_rows",
			Help:    "Rows per built report table",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ReportExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helpdesk_report_csv_exports_total",
			Help: "CSV documents produced",
		},
	)

	ReportSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "helpdesk_report_sessions",
			Help: "Live per-user report selections",
		},
	)
)

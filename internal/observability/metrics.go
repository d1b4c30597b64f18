package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// notification pipeline.
type Metrics struct {
	NotificationsCreated *prometheus.CounterVec // labels: category
	EmailsDispatched     *prometheus.CounterVec // labels: kind, outcome={delivered,failed,skipped}
	EmailSendDuration    prometheus.Histogram

	// Background worker metrics.
	SweepRuns          prometheus.Counter
	SweepDuration      prometheus.Histogram
	SweepAlertsRaised  prometheus.Counter
	WeeklyReportsSent  prometheus.Counter
	WeeklyReportErrors prometheus.Counter

	// Realtime push metrics.
	WebsocketClients prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "notifications_created_total",
			Help:      "Notifications persisted, by category.",
		}, []string{"category"}),
		EmailsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "emails_dispatched_total",
			Help:      "Email dispatch attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		EmailSendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodguard",
			Name:      "email_send_duration_seconds",
			Help:      "Duration of a single email delivery attempt.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "maintenance_sweep_runs_total",
			Help:      "Completed maintenance sweep passes.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodguard",
			Name:      "maintenance_sweep_duration_seconds",
			Help:      "Duration of a full maintenance sweep pass.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SweepAlertsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "maintenance_sweep_alerts_total",
			Help:      "Sensors flagged for maintenance by the sweep.",
		}),
		WeeklyReportsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "weekly_reports_sent_total",
			Help:      "Weekly report emails delivered.",
		}),
		WeeklyReportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodguard",
			Name:      "weekly_report_errors_total",
			Help:      "Weekly report generation or delivery failures.",
		}),
		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodguard",
			Name:      "websocket_clients",
			Help:      "Currently connected realtime notification clients.",
		}),
	}

	prometheus.MustRegister(
		m.NotificationsCreated,
		m.EmailsDispatched,
		m.EmailSendDuration,
		m.SweepRuns,
		m.SweepDuration,
		m.SweepAlertsRaised,
		m.WeeklyReportsSent,
		m.WeeklyReportErrors,
		m.WebsocketClients,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry to avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "floodguard", Name: "notifications_created_total"}, []string{"category"}),
		EmailsDispatched:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "floodguard", Name: "emails_dispatched_total"}, []string{"kind", "outcome"}),
		EmailSendDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "floodguard", Name: "email_send_duration_seconds"}),
		SweepRuns:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodguard", Name: "maintenance_sweep_runs_total"}),
		SweepDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "floodguard", Name: "maintenance_sweep_duration_seconds"}),
		SweepAlertsRaised:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodguard", Name: "maintenance_sweep_alerts_total"}),
		WeeklyReportsSent:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodguard", Name: "weekly_reports_sent_total"}),
		WeeklyReportErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodguard", Name: "weekly_report_errors_total"}),
		WebsocketClients:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodguard", Name: "websocket_clients"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the abandoned-cart sweep, exported on /metrics.
var (
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orchid_sweep_runs_total",
		Help: "Number of abandoned-cart sweep runs started.",
	})
	SweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orchid_sweep_errors_total",
		Help: "Number of sweep runs aborted by a scan failure.",
	})
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orchid_reminders_sent_total",
		Help: "Number of reminder emails successfully sent.",
	})
	ReminderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orchid_reminder_failures_total",
		Help: "Number of candidate carts that failed during a sweep.",
	})
	CodesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orchid_discount_codes_issued_total",
		Help: "Number of discount codes created by the sweep.",
	})
)

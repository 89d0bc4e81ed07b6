package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	remindersProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_processed_total",
			Help: "Reminder jobs handled without error (delivered or skipped)",
		},
	)
	remindersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_failed_total",
			Help: "Reminder jobs that errored during delivery",
		},
	)
)

func init() {
	prometheus.MustRegister(remindersProcessed)
	prometheus.MustRegister(remindersFailed)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MoodsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "moods_saved_total",
			Help:      "Mood entries written to mood_log.",
		},
		[]string{"mood"},
	)

	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "storage_errors_total",
			Help:      "Tracker operations that failed in the datastore.",
		},
		[]string{"op"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code.",
		},
		[]string{"route", "code"},
	)
)

// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesTotal counts applied vote deltas by target and direction.
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_votes_total",
		Help: "Total number of vote deltas applied",
	}, []string{"target", "direction"})

	// ForumWritesTotal counts forum content creation by kind.
	ForumWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_forum_writes_total",
		Help: "Total number of forum posts and comments created",
	}, []string{"kind"})

	// RetractionDenialsTotal counts forum delete attempts rejected by the guard.
	RetractionDenialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_retraction_denials_total",
		Help: "Total number of forum delete attempts denied, by reason",
	}, []string{"kind", "reason"})

	// UploadsTotal counts image uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_uploads_total",
		Help: "Total number of image upload attempts",
	}, []string{"outcome"})
)

// Package metrics exposes Prometheus collectors for the trip workflow.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Notification kinds.
const (
	KindTripCreated = "trip_created"
	KindInvitation  = "invitation"
)

var (
	tripConfirmations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Subsystem: "workflow",
		Name:      "trip_confirmations_total",
		Help:      "Trip confirmation attempts, labeled by outcome (confirmed, already_confirmed).",
	}, []string{"outcome"})

	participantConfirmations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Subsystem: "workflow",
		Name:      "participant_confirmations_total",
		Help:      "Participant confirmations, labeled by outcome (newly, already).",
	}, []string{"outcome"})

	notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Subsystem: "notify",
		Name:      "notifications_total",
		Help:      "Outbound notifications, labeled by kind and outcome (sent, failed).",
	}, []string{"kind", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trip_planner",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, labeled by method, route pattern and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(tripConfirmations, participantConfirmations, notifications, requestDuration)
}

// RecordTripConfirmation counts a confirmTrip call that reached a decision.
func RecordTripConfirmation(alreadyConfirmed bool) {
	outcome := "confirmed"
	if alreadyConfirmed {
		outcome = "already_confirmed"
	}
	tripConfirmations.WithLabelValues(outcome).Inc()
}

// RecordParticipantConfirmation counts a successful confirmParticipant call.
func RecordParticipantConfirmation(newly bool) {
	outcome := "already"
	if newly {
		outcome = "newly"
	}
	participantConfirmations.WithLabelValues(outcome).Inc()
}

// RecordNotification counts one dispatch attempt of the given kind.
func RecordNotification(kind string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	notifications.WithLabelValues(kind, outcome).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// pattern (e.g. "/trips/{tripId}"), never the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

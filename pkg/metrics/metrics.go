// Package metrics provides Prometheus metrics for the battle resolution
// poller.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "duelboard"

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_total",
		Help:      "Completed polling cycles.",
	})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Wall time of one polling cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	fetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_fetch_errors_total",
		Help:      "Failed submission feed fetches; the participant is skipped for the cycle.",
	})

	submissionsSeenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_seen_total",
		Help:      "Submission records received from the feed, relevant or not.",
	})

	duplicatesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_duplicate_total",
		Help:      "Accepted submissions skipped because their id was already resolved.",
	})

	awardsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "awards_total",
		Help:      "Award mutations emitted to the leaderboard sink.",
	})

	revokesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revokes_total",
		Help:      "Revoke mutations emitted when an earlier solve displaces the credited team.",
	})

	sinkErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_errors_total",
		Help:      "Leaderboard sink writes that failed or targeted an unknown team.",
	})

	battleCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "battles",
		Help:      "Configured battles.",
	})

	problemCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "problems",
		Help:      "Configured problems per battle.",
	})

	claimedProblems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "claimed_problems",
		Help:      "Battle/problem pairs that currently have a credited first solver.",
	})
)

// RecordCycle increments the completed cycle counter.
func RecordCycle() { cyclesTotal.Inc() }

// ObserveCycleDuration records the wall time of one cycle.
func ObserveCycleDuration(d time.Duration) { cycleDuration.Observe(d.Seconds()) }

// RecordFetchError increments the feed fetch failure counter.
func RecordFetchError() { fetchErrorsTotal.Inc() }

// RecordSubmissionSeen increments the received record counter.
func RecordSubmissionSeen() { submissionsSeenTotal.Inc() }

// RecordDuplicateSkipped increments the duplicate submission counter.
func RecordDuplicateSkipped() { duplicatesSkippedTotal.Inc() }

// RecordAward increments the award mutation counter.
func RecordAward() { awardsTotal.Inc() }

// RecordRevoke increments the revoke mutation counter.
func RecordRevoke() { revokesTotal.Inc() }

// RecordSinkError increments the sink write failure counter.
func RecordSinkError() { sinkErrorsTotal.Inc() }

// UpdateBattleCount sets the configured battle gauge.
func UpdateBattleCount(n int) { battleCount.Set(float64(n)) }

// UpdateProblemCount sets the configured problem gauge.
func UpdateProblemCount(n int) { problemCount.Set(float64(n)) }

// UpdateClaimedProblems sets the claimed outcome gauge.
func UpdateClaimedProblems(n int) { claimedProblems.Set(float64(n)) }

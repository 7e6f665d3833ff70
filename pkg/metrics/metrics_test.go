package metrics_test

import (
	"testing"
	"time"

	"github.com/okian/duelboard/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the metrics package", t, func() {
		Convey("Then counters and gauges accept updates without panicking", func() {
			So(func() {
				metrics.RecordCycle()
				metrics.ObserveCycleDuration(250 * time.Millisecond)
				metrics.RecordFetchError()
				metrics.RecordSubmissionSeen()
				metrics.RecordDuplicateSkipped()
				metrics.RecordAward()
				metrics.RecordRevoke()
				metrics.RecordSinkError()
				metrics.UpdateBattleCount(2)
				metrics.UpdateProblemCount(5)
				metrics.UpdateClaimedProblems(3)
			}, ShouldNotPanic)
		})
	})
}

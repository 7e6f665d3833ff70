package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/duelboard/internal/app"
	"github.com/okian/duelboard/internal/config"
	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type staticFeed struct {
	subs map[string][]model.Submission
}

func (f *staticFeed) Recent(_ context.Context, handle string) ([]model.Submission, error) {
	return f.subs[handle], nil
}

type memorySink struct {
	mu        sync.Mutex
	mutations []model.Mutation
}

func (m *memorySink) Apply(_ context.Context, mut model.Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations = append(m.mutations, mut)
	return nil
}

func (m *memorySink) snapshot() []model.Mutation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Mutation(nil), m.mutations...)
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.PollIntervalSeconds = 1
	cfg.Sheet.SpreadsheetID = "sheet-123"
	cfg.Problems = []config.ProblemConfig{{ContestID: 1881, Index: "A", Points: 200}}
	cfg.Battles = []config.BattleConfig{{
		ID: "finals",
		Teams: []config.TeamConfig{
			{Name: "X", Handle: "xh"},
			{Name: "Y", Handle: "yh"},
		},
	}}
	return cfg
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service with injected collaborators", t, func() {
		feed := &staticFeed{subs: map[string][]model.Submission{
			"xh": {{
				ID:          1,
				Handle:      "xh",
				ContestID:   1881,
				Index:       "A",
				Verdict:     model.VerdictAccepted,
				SubmittedAt: 100,
			}},
		}}
		sink := &memorySink{}
		svc := app.New(testConfig(), app.WithFeed(feed), app.WithSink(sink))
		defer svc.Stop()

		Convey("When the service starts", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it reports started", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["battles"], ShouldEqual, 1)
			})

			Convey("And the immediate first cycle credits the solver", func() {
				So(err, ShouldBeNil)
				// The first cycle runs asynchronously right after Start.
				deadline := time.Now().Add(2 * time.Second)
				for time.Now().Before(deadline) {
					if out, ok := svc.Outcome("finals", "1881/A"); ok && out.Winner != "" {
						break
					}
					time.Sleep(10 * time.Millisecond)
				}

				out, ok := svc.Outcome("finals", "1881/A")
				So(ok, ShouldBeTrue)
				So(out.Winner, ShouldEqual, "X")

				muts := sink.snapshot()
				So(muts, ShouldHaveLength, 1)
				So(muts[0].Action, ShouldEqual, model.ActionAward)
			})

			Convey("And starting again is a no-op", func() {
				So(err, ShouldBeNil)
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				So(err, ShouldBeNil)
				svc.Stop()
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

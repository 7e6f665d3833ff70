package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/duelboard/internal/poller"
	"github.com/okian/duelboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type countingEngine struct {
	cycles atomic.Int64
}

func (c *countingEngine) ProcessCycle(context.Context) {
	c.cycles.Add(1)
}

func TestPoller(t *testing.T) {
	Convey("Given a poller with a short interval", t, func() {
		engine := &countingEngine{}
		p := poller.New(engine, 20*time.Millisecond)

		Convey("When it runs for a few intervals", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go p.Run(ctx)

			time.Sleep(90 * time.Millisecond)

			shutdownCtx, sdCancel := context.WithTimeout(context.Background(), time.Second)
			defer sdCancel()
			err := p.Shutdown(shutdownCtx)

			Convey("Then it ran an immediate cycle plus one per tick", func() {
				So(err, ShouldBeNil)
				n := engine.cycles.Load()
				So(n, ShouldBeGreaterThanOrEqualTo, 3)
				So(n, ShouldBeLessThanOrEqualTo, 6)
			})

			Convey("And no further cycles run after shutdown", func() {
				So(err, ShouldBeNil)
				n := engine.cycles.Load()
				time.Sleep(60 * time.Millisecond)
				So(engine.cycles.Load(), ShouldEqual, n)
			})
		})
	})

	Convey("Given a poller whose context is canceled", t, func() {
		engine := &countingEngine{}
		p := poller.New(engine, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			p.Run(ctx)
			close(done)
		}()

		Convey("When the context is canceled", func() {
			cancel()

			Convey("Then the loop stops after the immediate cycle", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("poller did not stop on context cancel")
				}
				So(engine.cycles.Load(), ShouldEqual, 1)
			})
		})
	})
}

package dedupe_test

import (
	"context"
	"testing"

	"github.com/okian/duelboard/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		ctx := context.Background()
		d := dedupe.New()

		Convey("When recording a new id", func() {
			seen := d.SeenAndRecord(ctx, 101)

			Convey("Then it reports not seen and grows", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports seen", func() {
				So(d.SeenAndRecord(ctx, 101), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a deduper bounded to three ids", t, func() {
		ctx := context.Background()
		d := dedupe.New(dedupe.WithMaxSize(3))

		Convey("When a fourth id arrives", func() {
			for _, id := range []int64{1, 2, 3, 4} {
				So(d.SeenAndRecord(ctx, id), ShouldBeFalse)
			}

			Convey("Then the oldest id was evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, 1), ShouldBeFalse) // forgotten
				So(d.SeenAndRecord(ctx, 4), ShouldBeTrue)  // still tracked
			})
		})
	})

	Convey("Given a non-positive bound", t, func() {
		d := dedupe.New(dedupe.WithMaxSize(0))

		Convey("Then the default bound applies", func() {
			So(d.SeenAndRecord(context.Background(), 7), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}

package sheet

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestColumnMath(t *testing.T) {
	Convey("Given the fixed worksheet layout", t, func() {
		Convey("Then problem positions map to paired columns", func() {
			// First problem: solved mark in C, time in D.
			So(solvedColumn(0), ShouldEqual, 3)
			So(solvedColumn(1), ShouldEqual, 5)
			So(solvedColumn(4), ShouldEqual, 11)
		})

		Convey("Then column numbers render as A1 letters", func() {
			So(columnName(1), ShouldEqual, "A")
			So(columnName(2), ShouldEqual, "B")
			So(columnName(3), ShouldEqual, "C")
			So(columnName(26), ShouldEqual, "Z")
			So(columnName(27), ShouldEqual, "AA")
			So(columnName(52), ShouldEqual, "AZ")
		})

		Convey("Then cell references include the worksheet name", func() {
			s := &Sink{sheetName: "Leaderboard"}
			So(s.cellRef(2, 2), ShouldEqual, "Leaderboard!B2")
			So(s.cellRef(5, 11), ShouldEqual, "Leaderboard!K5")
		})
	})
}

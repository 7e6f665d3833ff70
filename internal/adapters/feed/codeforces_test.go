package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/duelboard/internal/adapters/feed"
	"github.com/okian/duelboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const statusBody = `{
	"status": "OK",
	"result": [
		{
			"id": 226957605,
			"creationTimeSeconds": 1696153000,
			"verdict": "OK",
			"problem": {"contestId": 1881, "index": "A"}
		},
		{
			"id": 226957101,
			"creationTimeSeconds": 1696152000,
			"verdict": "WRONG_ANSWER",
			"problem": {"contestId": 1878, "index": "B"}
		}
	]
}`

func TestClient_Recent(t *testing.T) {
	Convey("Given a judge API serving user.status", t, func() {
		var gotPath, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(statusBody))
		}))
		defer srv.Close()

		c := feed.New(feed.WithBaseURL(srv.URL), feed.WithCount(25))

		Convey("When fetching a handle's recent submissions", func() {
			subs, err := c.Recent(context.Background(), "tourist")

			Convey("Then the request targets user.status with the window params", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/user.status")
				So(gotQuery, ShouldContainSubstring, "handle=tourist")
				So(gotQuery, ShouldContainSubstring, "from=1")
				So(gotQuery, ShouldContainSubstring, "count=25")
			})

			Convey("Then records map onto domain submissions", func() {
				So(err, ShouldBeNil)
				So(subs, ShouldHaveLength, 2)
				So(subs[0].ID, ShouldEqual, 226957605)
				So(subs[0].Handle, ShouldEqual, "tourist")
				So(subs[0].ProblemKey(), ShouldEqual, "1881/A")
				So(subs[0].Verdict, ShouldEqual, model.VerdictAccepted)
				So(subs[0].SubmittedAt, ShouldEqual, 1696153000)
				So(subs[1].Verdict, ShouldEqual, "WRONG_ANSWER")
			})
		})
	})

	Convey("Given a judge API returning a failure envelope", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"FAILED","comment":"handle: User not found"}`))
		}))
		defer srv.Close()

		c := feed.New(feed.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			_, err := c.Recent(context.Background(), "ghost")

			Convey("Then the rejection carries the API comment", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, feed.ErrRejected), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "User not found")
			})
		})
	})

	Convey("Given a judge API answering with a non-200 status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := feed.New(feed.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			_, err := c.Recent(context.Background(), "anyone")

			Convey("Then the failure is reported as unavailable", func() {
				So(errors.Is(err, feed.ErrUnavailable), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unreachable endpoint", t, func() {
		c := feed.New(feed.WithBaseURL("http://127.0.0.1:1"))

		Convey("When fetching", func() {
			_, err := c.Recent(context.Background(), "anyone")

			Convey("Then the failure is reported as unavailable", func() {
				So(errors.Is(err, feed.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}

package detail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marquee-cli/marquee/internal/tmdbtest"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	delay    time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
	cast     int
	failBase error
	failCast error
}

func (f *fakeSource) enter() func() {
	n := f.inflight.Add(1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(f.delay)
	return func() { f.inflight.Add(-1) }
}

func (f *fakeSource) Details(_ context.Context, kind tmdb.Kind, id int) (*tmdb.Details, error) {
	defer f.enter()()
	if f.failBase != nil {
		return nil, f.failBase
	}
	return &tmdb.Details{ID: id, Name: "Severance", FirstAirDate: "2022-02-18"}, nil
}

func (f *fakeSource) Credits(_ context.Context, _ tmdb.Kind, id int) (*tmdb.Credits, error) {
	defer f.enter()()
	if f.failCast != nil {
		return nil, f.failCast
	}
	return &tmdb.Credits{ID: id, Cast: lo.Times(f.cast, func(i int) tmdb.CastMember {
		return tmdb.CastMember{ID: i, Name: "Actor", Order: i}
	})}, nil
}

func (f *fakeSource) ExternalIDs(_ context.Context, _ tmdb.Kind, id int) (*tmdb.ExternalIDs, error) {
	defer f.enter()()
	return &tmdb.ExternalIDs{ID: id, IMDbID: "tt11280740"}, nil
}

func (f *fakeSource) Videos(_ context.Context, _ tmdb.Kind, id int) (*tmdb.Videos, error) {
	defer f.enter()()
	return &tmdb.Videos{ID: id, Results: []tmdb.Video{
		{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
		{Key: "first", Site: "YouTube", Type: "Trailer"},
		{Key: "second", Site: "YouTube", Type: "Trailer"},
	}}, nil
}

func TestFetch(t *testing.T) {
	Convey("Given a source with 25 cast members", t, func() {
		source := &fakeSource{cast: 25, delay: 20 * time.Millisecond}
		aggregator := New(source, Options{})

		Convey("When fetching a show", func() {
			record, err := aggregator.Fetch(context.Background(), 95396, tmdb.TV)

			Convey("All four requests run concurrently", func() {
				So(err, ShouldBeNil)
				So(source.peak.Load(), ShouldEqual, 4)
			})

			Convey("The cast is truncated to the default limit", func() {
				So(record.Cast, ShouldHaveLength, DefaultCastLimit)
			})

			Convey("The first YouTube trailer is selected", func() {
				trailer, ok := record.Trailer.Get()
				So(ok, ShouldBeTrue)
				So(trailer.Key, ShouldEqual, "first")
				So(trailer.URL, ShouldEqual, "https://www.youtube.com/embed/first")
			})

			Convey("The record keeps kind and base fields", func() {
				So(record.Kind, ShouldEqual, tmdb.TV)
				So(record.DisplayTitle(), ShouldEqual, "Severance")
				So(record.Year(), ShouldEqual, "2022")
				So(record.ExternalID.OrEmpty(), ShouldEqual, "tt11280740")
				So(record.Degraded, ShouldBeEmpty)
			})
		})

		Convey("When a custom limit is configured", func() {
			record, err := New(source, Options{CastLimit: 3}).Fetch(context.Background(), 1, tmdb.Movie)
			So(err, ShouldBeNil)
			So(record.Cast, ShouldHaveLength, 3)
		})

		Convey("When credits fail", func() {
			source.failCast = errors.New("boom")
			record, err := aggregator.Fetch(context.Background(), 1, tmdb.Movie)

			Convey("The record degrades to an empty cast", func() {
				So(err, ShouldBeNil)
				So(record.Cast, ShouldBeEmpty)
				So(record.Degraded, ShouldResemble, []string{PartCredits})
			})
		})

		Convey("When the base record fails", func() {
			source.failBase = &tmdb.Error{Status: http.StatusInternalServerError}
			_, err := aggregator.Fetch(context.Background(), 1, tmdb.Movie)

			Convey("The fetch fails with both sentinels reachable", func() {
				So(errors.Is(err, ErrBaseUnavailable), ShouldBeTrue)
				So(tmdb.StatusOf(err), ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestFetchOverHTTP(t *testing.T) {
	Convey("Given a movie whose external ids answer 404", t, func() {
		server := tmdbtest.New()
		defer server.Close()

		server.Movie(603, "The Matrix", "", "vKQi3bBA1y8", "Keanu Reeves", "Laurence Fishburne")
		aggregator := New(server.Client("secret"), Options{CastLimit: 10})

		record, err := aggregator.Fetch(context.Background(), 603, tmdb.Movie)

		Convey("The record is returned without an external id", func() {
			So(err, ShouldBeNil)
			So(record.ExternalID.IsAbsent(), ShouldBeTrue)
			So(record.Cast, ShouldHaveLength, 2)
			So(record.Trailer.IsPresent(), ShouldBeTrue)
			So(record.Degraded, ShouldResemble, []string{PartExternalIDs})
		})

		Convey("Absent options encode as null", func() {
			data, err := json.Marshal(record)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"imdb_id":null`)
			So(string(data), ShouldContainSubstring, `"kind":"movie"`)
		})
	})

	Convey("Given an unknown id", t, func() {
		server := tmdbtest.New()
		defer server.Close()

		_, err := New(server.Client("secret"), Options{}).Fetch(context.Background(), 1, tmdb.Movie)

		Convey("The fetch fails as base unavailable", func() {
			So(errors.Is(err, ErrBaseUnavailable), ShouldBeTrue)

			var terr *tmdb.Error
			So(errors.As(err, &terr), ShouldBeTrue)
			So(terr.NotFound(), ShouldBeTrue)
		})
	})
}

func TestSelectTrailer(t *testing.T) {
	Convey("No matching video yields absent", t, func() {
		So(SelectTrailer(nil).IsAbsent(), ShouldBeTrue)
		So(SelectTrailer([]tmdb.Video{{Key: "x", Site: "YouTube", Type: "Clip"}}).IsAbsent(), ShouldBeTrue)
	})
}

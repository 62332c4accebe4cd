package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/marquee-cli/marquee/internal/tmdbtest"
	"github.com/marquee-cli/marquee/tmdb"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRequest(t *testing.T) {
	Convey("Given a catalog server", t, func() {
		server := tmdbtest.New()
		defer server.Close()

		server.Handle("movie/now_playing", http.StatusOK, tmdb.Page{Page: 1, TotalPages: 3, Results: tmdbtest.Summaries(1, 2)})
		ctx := context.Background()

		Convey("When the token is missing", func() {
			client := server.Client("")
			_, err := client.Request(ctx, http.MethodGet, "movie/now_playing", nil)

			Convey("No request is sent", func() {
				So(errors.Is(err, tmdb.ErrMissingCredential), ShouldBeTrue)
				So(server.TotalHits(), ShouldEqual, 0)
			})
		})

		Convey("When the method is neither GET nor POST", func() {
			client := server.Client("secret")
			_, err := client.Request(ctx, http.MethodDelete, "movie/now_playing", nil)

			Convey("It is rejected locally", func() {
				So(errors.Is(err, tmdb.ErrUnsupportedMethod), ShouldBeTrue)
				So(server.TotalHits(), ShouldEqual, 0)
			})
		})

		Convey("When requesting a listing", func() {
			client := server.Client("secret")
			body, err := client.Request(ctx, http.MethodGet, "/movie/now_playing", url.Values{"page": {"2"}})

			Convey("The bearer token, language and params are sent", func() {
				So(err, ShouldBeNil)
				So(server.Header("movie/now_playing").Get("Authorization"), ShouldEqual, "Bearer secret")
				So(server.Header("movie/now_playing").Get("Accept"), ShouldEqual, "application/json")
				So(server.Query("movie/now_playing").Get("language"), ShouldEqual, "en-US")
				So(server.Query("movie/now_playing").Get("page"), ShouldEqual, "2")
			})

			Convey("The body decodes", func() {
				var page tmdb.Page
				So(body.Decode(&page), ShouldBeNil)
				So(page.TotalPages, ShouldEqual, 3)
				So(page.Results, ShouldHaveLength, 2)
			})
		})

		Convey("When the upstream answers 404", func() {
			client := server.Client("secret")
			_, err := client.Request(ctx, http.MethodGet, "movie/603/external_ids", nil)

			Convey("A transport error carries the status", func() {
				var terr *tmdb.Error
				So(errors.As(err, &terr), ShouldBeTrue)
				So(terr.NotFound(), ShouldBeTrue)
				So(terr.Endpoint, ShouldEqual, "movie/603/external_ids")
				So(terr.Message, ShouldContainSubstring, "could not be found")
				So(tmdb.StatusOf(err), ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the upstream answers malformed json", func() {
			server.Handle("movie/1", http.StatusOK, "<html>")
			client := server.Client("secret")
			_, err := client.Request(ctx, http.MethodGet, "movie/1", nil)

			Convey("A transport error is returned", func() {
				var terr *tmdb.Error
				So(errors.As(err, &terr), ShouldBeTrue)
				So(terr.Status, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the server is unreachable", func() {
			client := server.Client("secret")
			server.Close()
			_, err := client.Request(ctx, http.MethodGet, "movie/1", nil)

			Convey("A transport error without status is returned", func() {
				var terr *tmdb.Error
				So(errors.As(err, &terr), ShouldBeTrue)
				So(terr.Status, ShouldEqual, 0)
				So(terr.Err, ShouldNotBeNil)
			})
		})
	})
}

func TestEndpoints(t *testing.T) {
	Convey("Given a movie registered on the server", t, func() {
		server := tmdbtest.New()
		defer server.Close()

		server.Movie(603, "The Matrix", "tt0133093", "vKQi3bBA1y8", "Keanu Reeves", "Carrie-Anne Moss")
		client := server.Client("secret")
		ctx := context.Background()

		Convey("Details, credits, external ids and videos decode", func() {
			details, err := client.Details(ctx, tmdb.Movie, 603)
			So(err, ShouldBeNil)
			So(details.DisplayTitle(), ShouldEqual, "The Matrix")
			So(details.Year(), ShouldEqual, "1999")

			credits, err := client.Credits(ctx, tmdb.Movie, 603)
			So(err, ShouldBeNil)
			So(credits.Cast, ShouldHaveLength, 2)

			ids, err := client.ExternalIDs(ctx, tmdb.Movie, 603)
			So(err, ShouldBeNil)
			So(ids.IMDbID, ShouldEqual, "tt0133093")

			videos, err := client.Videos(ctx, tmdb.Movie, 603)
			So(err, ShouldBeNil)
			So(videos.Results[0].Key, ShouldEqual, "vKQi3bBA1y8")
		})

		Convey("The TV family is addressed by kind", func() {
			_, err := client.Details(ctx, tmdb.TV, 603)
			So(tmdb.StatusOf(err), ShouldEqual, http.StatusNotFound)
			So(server.Hits("tv/603"), ShouldEqual, 1)
		})

		Convey("List sends the page number", func() {
			server.Handle("search/movie", http.StatusOK, tmdb.Page{Page: 2, TotalPages: 2})
			page, err := client.List(ctx, "search/movie", 2, url.Values{"query": {"Dune"}})
			So(err, ShouldBeNil)
			So(page.Page, ShouldEqual, 2)
			So(server.Query("search/movie").Get("page"), ShouldEqual, "2")
			So(server.Query("search/movie").Get("query"), ShouldEqual, "Dune")
		})
	})
}

func TestKind(t *testing.T) {
	Convey("Kinds round-trip through text", t, func() {
		for _, k := range tmdb.Kinds {
			text, err := k.MarshalText()
			So(err, ShouldBeNil)

			var parsed tmdb.Kind
			So(parsed.UnmarshalText(text), ShouldBeNil)
			So(parsed, ShouldEqual, k)
		}

		_, err := tmdb.ParseKind("anime")
		So(err, ShouldNotBeNil)
	})
}

func TestNew(t *testing.T) {
	Convey("A relative base url is rejected", t, func() {
		_, err := tmdb.New(tmdb.Options{BaseURL: "api/3"})
		So(err, ShouldNotBeNil)
	})
}

package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/internal/tmdbtest"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/marquee-cli/marquee/worker"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type memoryPersister struct{ entries []watchlater.Entry }

func (m *memoryPersister) Load() ([]watchlater.Entry, error) { return m.entries, nil }
func (m *memoryPersister) Save(e []watchlater.Entry) error  { m.entries = e; return nil }

func newBrowser(server *tmdbtest.Server, w *worker.Worker) *browse.Browser {
	client := server.Client("secret")
	store, _ := watchlater.Open(&memoryPersister{})
	return browse.NewBrowser(browse.Deps{
		Catalog:        client,
		Fetcher:        detail.New(client, detail.Options{}),
		Worker:         w,
		WatchLater:     store,
		ResultsPerPage: 10,
	})
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, &Output{Listing: browse.Search, Query: "test"})
			So(err, ShouldBeNil)

			var output map[string]any
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output["query"], ShouldEqual, "test")
			So(output["listing"], ShouldEqual, "search")
			So(output["results"], ShouldHaveLength, 0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a catalog with a top rated page", t, func() {
		server := tmdbtest.New()
		defer server.Close()
		w := worker.New(4)
		defer w.Close()

		server.Handle("movie/top_rated", http.StatusOK, tmdb.Page{Page: 1, TotalPages: 3, Results: tmdbtest.Summaries(603, 2)})
		server.Movie(603, "The Matrix", "tt0133093", "vKQi3bBA1y8", "Keanu Reeves")
		// 604 has no detail routes

		var buf bytes.Buffer
		options := &Options{
			Out:        &buf,
			Browser:    newBrowser(server, w),
			Listing:    browse.TopRated,
			Page:       1,
			Json:       true,
			PlayerBase: "https://player.example",
		}

		Convey("Json output carries records, links and failures", func() {
			So(Run(context.Background(), options), ShouldBeNil)

			var output struct {
				Listing    string `json:"listing"`
				Page       int    `json:"page"`
				TotalPages int    `json:"total_pages"`
				Results    []struct {
					ID     int    `json:"id"`
					Title  string `json:"title"`
					Error  string `json:"error"`
					Record *struct {
						IMDbID string `json:"imdb_id"`
					} `json:"record"`
					Links *struct {
						Embed   string `json:"embed"`
						IMDb    string `json:"imdb"`
						Trailer string `json:"trailer"`
					} `json:"links"`
				} `json:"results"`
			}
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

			So(output.Listing, ShouldEqual, "top_rated")
			So(output.Page, ShouldEqual, 1)
			So(output.TotalPages, ShouldEqual, 3)
			So(output.Results, ShouldHaveLength, 2)

			matrix := output.Results[0]
			So(matrix.Title, ShouldEqual, "The Matrix")
			So(matrix.Record, ShouldNotBeNil)
			So(matrix.Record.IMDbID, ShouldEqual, "tt0133093")
			So(matrix.Links.Embed, ShouldEqual, "https://player.example/embed/movie/603")
			So(matrix.Links.IMDb, ShouldEqual, "https://www.imdb.com/title/tt0133093/")
			So(matrix.Links.Trailer, ShouldContainSubstring, "vKQi3bBA1y8")

			missing := output.Results[1]
			So(missing.Record, ShouldBeNil)
			So(missing.Error, ShouldNotBeEmpty)
		})

		Convey("A picker narrows the output", func() {
			picker, err := ParsePicker("first", "")
			So(err, ShouldBeNil)
			options.Picker = mo.Some(picker)
			options.Json = false

			So(Run(context.Background(), options), ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 1)
			So(lines[0], ShouldStartWith, "603\tThe Matrix\t1999\t")
		})

		Convey("A failed page is returned as an error", func() {
			options.Listing = browse.NowPlaying
			So(Run(context.Background(), options), ShouldNotBeNil)
		})

		Convey("Search without a query is rejected", func() {
			options.Listing = browse.Search
			So(Run(context.Background(), options), ShouldEqual, errNoQuery)
			So(server.TotalHits(), ShouldEqual, 0)
		})
	})
}

func TestParsePicker(t *testing.T) {
	Convey("Given three slots", t, func() {
		slots := []browse.Slot{
			{Summary: tmdb.Summary{ID: 1, Title: "Alien"}},
			{Summary: tmdb.Summary{ID: 2, Title: "Aliens"}},
			{Summary: tmdb.Summary{ID: 3, Title: "Alien 3"}},
		}

		Convey("last picks the final slot", func() {
			p, _ := ParsePicker("last", "")
			So(p(slots)[0].Summary.ID, ShouldEqual, 3)
		})

		Convey("index is clamped", func() {
			p, _ := ParsePicker("index", "10")
			So(p(slots)[0].Summary.ID, ShouldEqual, 3)
		})

		Convey("exact matches titles ignoring case", func() {
			p, _ := ParsePicker("exact", "aliens")
			picked := p(slots)
			So(picked, ShouldHaveLength, 1)
			So(picked[0].Summary.ID, ShouldEqual, 2)
		})

		Convey("unknown kinds fail", func() {
			_, err := ParsePicker("random", "")
			So(err, ShouldNotBeNil)
			_, err = ParsePicker("index", "x")
			So(err, ShouldNotBeNil)
		})
	})
}

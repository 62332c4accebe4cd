package playback

import (
	"testing"

	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestURLs(t *testing.T) {
	Convey("Embed urls follow the kind", t, func() {
		So(EmbedURL("https://vidbinge.dev/", tmdb.Movie, 603), ShouldEqual, "https://vidbinge.dev/embed/movie/603")
		So(EmbedURL("https://vidbinge.dev", tmdb.TV, 95396), ShouldEqual, "https://vidbinge.dev/embed/tv/95396")
	})

	Convey("TMDB pages follow the kind", t, func() {
		So(TMDBURL(tmdb.TV, 1399), ShouldEqual, "https://www.themoviedb.org/tv/1399")
	})

	Convey("IMDb pages need an external id", t, func() {
		So(IMDbURL(mo.Some("tt0133093")).OrEmpty(), ShouldEqual, "https://www.imdb.com/title/tt0133093/")
		So(IMDbURL(mo.None[string]()).IsAbsent(), ShouldBeTrue)
	})

	Convey("Given a record without trailer or external id", t, func() {
		record := &detail.Record{
			Details:    tmdb.Details{ID: 603},
			Kind:       tmdb.Movie,
			ExternalID: mo.None[string](),
			Trailer:    mo.None[detail.Trailer](),
		}
		links := LinksOf("https://vidbinge.dev", record)

		Convey("Only the always available links are set", func() {
			So(links.Embed, ShouldEqual, "https://vidbinge.dev/embed/movie/603")
			So(links.TMDB, ShouldEqual, "https://www.themoviedb.org/movie/603")
			So(links.IMDb, ShouldBeEmpty)
			So(links.Trailer, ShouldBeEmpty)
		})
	})

	Convey("Launch hands the url to the opener", t, func() {
		var opened string
		err := Launch(func(url string) error {
			opened = url
			return nil
		}, "https://www.imdb.com/title/tt0133093/")

		So(err, ShouldBeNil)
		So(opened, ShouldEqual, "https://www.imdb.com/title/tt0133093/")
		So(Launch(nil, ""), ShouldNotBeNil)
	})
}

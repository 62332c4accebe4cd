// Package playback builds the outbound links of a title and hands them to the system browser.
package playback

import (
	"fmt"
	"strings"

	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/open"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/mo"
)

// EmbedURL is the embedded player address of a title.
func EmbedURL(playerBase string, kind tmdb.Kind, id int) string {
	return fmt.Sprintf("%s/embed/%s/%d", strings.TrimRight(playerBase, "/"), kind.Segment(), id)
}

// TMDBURL is the catalog's public page of a title.
func TMDBURL(kind tmdb.Kind, id int) string {
	return fmt.Sprintf("%s/%s/%d", constant.TMDBSiteURL, kind.Segment(), id)
}

// IMDbURL is the IMDb page of an external id, absent when the id is unknown.
func IMDbURL(externalID mo.Option[string]) mo.Option[string] {
	id, ok := externalID.Get()
	if !ok || id == "" {
		return mo.None[string]()
	}
	return mo.Some(fmt.Sprintf("%s/%s/", constant.IMDbTitleURL, id))
}

// Links are every outbound address of a record.
type Links struct {
	Embed   string `json:"embed"`
	TMDB    string `json:"tmdb"`
	IMDb    string `json:"imdb,omitempty"`
	Trailer string `json:"trailer,omitempty"`
}

// LinksOf collects the addresses of record.
func LinksOf(playerBase string, record *detail.Record) Links {
	return Links{
		Embed:   EmbedURL(playerBase, record.Kind, record.ID),
		TMDB:    TMDBURL(record.Kind, record.ID),
		IMDb:    IMDbURL(record.ExternalID).OrEmpty(),
		Trailer: record.Trailer.OrEmpty().URL,
	}
}

// Opener launches a URL. open.Start is the default.
type Opener func(url string) error

// Launch opens url with opener, or with the system handler when opener is nil.
func Launch(opener Opener, url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}
	if opener == nil {
		opener = open.Start
	}
	return opener(url)
}

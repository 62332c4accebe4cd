// Package browse drives paginated listings: it fetches a page of summaries,
// caps it to the configured page size and materialises every entry into a
// detail record, all without blocking the goroutine that owns the controller.
package browse

import (
	"fmt"

	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/lo"
)

// Listing is a named source of paginated titles.
type Listing int

const (
	Favorites Listing = iota
	NowPlaying
	TopRated
	TVPopular
	TVAiringToday
	Search
	WatchLater
)

// Listings in display order.
var Listings = []Listing{Favorites, NowPlaying, TopRated, TVPopular, TVAiringToday, Search, WatchLater}

var listingNames = map[Listing]string{
	Favorites:     "favorites",
	NowPlaying:    "now_playing",
	TopRated:      "top_rated",
	TVPopular:     "tv_popular",
	TVAiringToday: "tv_airing_today",
	Search:        "search",
	WatchLater:    "watch_later",
}

var listingTitles = map[Listing]string{
	Favorites:     "Favorites",
	NowPlaying:    "Now Playing",
	TopRated:      "Top Rated",
	TVPopular:     "Popular TV",
	TVAiringToday: "Airing Today",
	Search:        "Search",
	WatchLater:    "Watch Later",
}

func (l Listing) String() string {
	return listingNames[l]
}

// Title is the human readable name.
func (l Listing) Title() string {
	return listingTitles[l]
}

// Kind is the kind of the listing's entries. Watch later and search entries carry their own.
func (l Listing) Kind() tmdb.Kind {
	switch l {
	case TVPopular, TVAiringToday:
		return tmdb.TV
	default:
		return tmdb.Movie
	}
}

func (l Listing) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseListing accepts the names returned by String.
func ParseListing(s string) (Listing, error) {
	l, ok := lo.FindKey(listingNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown listing %q, expected one of %v", s, ListingNames())
	}
	return l, nil
}

// ListingNames returns every listing name in display order.
func ListingNames() []string {
	return lo.Map(Listings, func(l Listing, _ int) string {
		return l.String()
	})
}

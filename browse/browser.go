package browse

import (
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/marquee-cli/marquee/worker"
)

// Deps are the collaborators shared by every listing controller.
type Deps struct {
	Catalog        Catalog
	Fetcher        Fetcher
	Worker         *worker.Worker
	WatchLater     *watchlater.Store
	ResultsPerPage int
}

// Browser holds one controller per listing, created on first use.
// Like Controller, it belongs to a single goroutine.
type Browser struct {
	deps        Deps
	controllers map[Listing]*Controller
	query       SearchQuery
}

func NewBrowser(deps Deps) *Browser {
	return &Browser{
		deps:        deps,
		controllers: make(map[Listing]*Controller),
	}
}

// Controller returns the controller of listing.
// The search controller is nil until Search is called.
func (b *Browser) Controller(listing Listing) *Controller {
	if c, ok := b.controllers[listing]; ok {
		return c
	}

	var loader Loader
	switch listing {
	case Search:
		return nil
	case Favorites:
		loader = FavoritesLoader(b.deps.Catalog)
	case NowPlaying:
		loader = EndpointLoader(b.deps.Catalog, "movie/now_playing", nil)
	case TopRated:
		loader = EndpointLoader(b.deps.Catalog, "movie/top_rated", nil)
	case TVPopular:
		loader = EndpointLoader(b.deps.Catalog, "tv/popular", nil)
	case TVAiringToday:
		loader = EndpointLoader(b.deps.Catalog, "tv/airing_today", nil)
	case WatchLater:
		loader = WatchLaterLoader(b.deps.WatchLater, b.deps.ResultsPerPage)
	}

	c := b.newController(listing, listing.Kind(), loader)
	b.controllers[listing] = c
	return c
}

// Search replaces the search controller with one for query.
func (b *Browser) Search(query SearchQuery) *Controller {
	b.query = query
	c := b.newController(Search, query.Kind, SearchLoader(b.deps.Catalog, query))
	b.controllers[Search] = c
	return c
}

// Query returns the last search query.
func (b *Browser) Query() SearchQuery {
	return b.query
}

func (b *Browser) newController(listing Listing, kind tmdb.Kind, loader Loader) *Controller {
	return NewController(listing, kind, loader, b.deps.Fetcher, b.deps.Worker, Options{
		ResultsPerPage: b.deps.ResultsPerPage,
	})
}

package browse

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/samber/lo"
)

// Catalog is the subset of the catalog client used by listing loaders.
type Catalog interface {
	List(ctx context.Context, endpoint string, page int, params url.Values) (*tmdb.Page, error)
	Account(ctx context.Context) (*tmdb.Account, error)
}

// Loader fetches one page of summaries. Loaders run on worker goroutines.
type Loader interface {
	Load(ctx context.Context, page int) (*tmdb.Page, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, page int) (*tmdb.Page, error)

func (f LoaderFunc) Load(ctx context.Context, page int) (*tmdb.Page, error) {
	return f(ctx, page)
}

// EndpointLoader pages through a fixed catalog endpoint.
func EndpointLoader(catalog Catalog, endpoint string, params url.Values) Loader {
	return LoaderFunc(func(ctx context.Context, page int) (*tmdb.Page, error) {
		return catalog.List(ctx, endpoint, page, params)
	})
}

// FavoritesLoader resolves the account owning the token once, then pages
// through its favorite movies, oldest first.
func FavoritesLoader(catalog Catalog) Loader {
	var (
		mu        sync.Mutex
		accountID int
	)

	return LoaderFunc(func(ctx context.Context, page int) (*tmdb.Page, error) {
		mu.Lock()
		id := accountID
		mu.Unlock()

		if id == 0 {
			account, err := catalog.Account(ctx)
			if err != nil {
				return nil, err
			}

			mu.Lock()
			accountID = account.ID
			id = account.ID
			mu.Unlock()
		}

		endpoint := fmt.Sprintf("account/%d/favorite/movies", id)
		return catalog.List(ctx, endpoint, page, url.Values{"sort_by": {"created_at.asc"}})
	})
}

// SearchQuery describes a title search.
type SearchQuery struct {
	Text  string
	Kind  tmdb.Kind
	Year  int
	Genre int
}

// Params encodes the query for the search endpoint of its kind.
func (q SearchQuery) Params() url.Values {
	params := url.Values{"query": {q.Text}}

	if q.Year > 0 {
		if q.Kind == tmdb.TV {
			params.Set("first_air_date_year", strconv.Itoa(q.Year))
		} else {
			params.Set("year", strconv.Itoa(q.Year))
		}
	}

	if q.Genre > 0 {
		params.Set("with_genres", strconv.Itoa(q.Genre))
	}

	return params
}

// SearchLoader pages through search results.
func SearchLoader(catalog Catalog, query SearchQuery) Loader {
	return EndpointLoader(catalog, "search/"+query.Kind.Segment(), query.Params())
}

// WatchLaterLoader pages through the saved entries locally.
// Summaries only carry the id and kind; the detail fetch fills in the rest.
func WatchLaterLoader(store *watchlater.Store, size int) Loader {
	return LoaderFunc(func(_ context.Context, page int) (*tmdb.Page, error) {
		entries, total := store.Page(page, size)

		return &tmdb.Page{
			Page:         page,
			TotalPages:   total,
			TotalResults: store.Len(),
			Results: lo.Map(entries, func(e watchlater.Entry, _ int) tmdb.Summary {
				return tmdb.Summary{ID: e.ID, MediaType: e.Kind.Segment()}
			}),
		}, nil
	})
}

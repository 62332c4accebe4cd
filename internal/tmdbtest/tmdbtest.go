// Package tmdbtest runs an in-process stand-in for the catalog API.
package tmdbtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/lo"
)

// Prefix is the version path every route is served under.
const Prefix = "/3"

type route struct {
	status int
	body   []byte
	delay  time.Duration
}

// Server answers registered routes with canned JSON and counts hits.
// Unregistered routes answer 404 the way the real API does.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	routes  map[string]route
	hits    map[string]int
	queries map[string]url.Values
	headers map[string]http.Header
}

// New starts a server. Callers must Close it.
func New() *Server {
	s := &Server{
		routes:  make(map[string]route),
		hits:    make(map[string]int),
		queries: make(map[string]url.Values),
		headers: make(map[string]http.Header),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, Prefix), "/")

	s.mu.Lock()
	s.hits[path]++
	s.queries[path] = r.URL.Query()
	s.headers[path] = r.Header.Clone()
	rt, ok := s.routes[path]
	s.mu.Unlock()

	if !ok {
		rt = route{
			status: http.StatusNotFound,
			body:   []byte(`{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`),
		}
	}

	if rt.delay > 0 {
		select {
		case <-time.After(rt.delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(rt.status)
	_, _ = w.Write(rt.body)
}

// Handle answers path with status and body. Strings and byte slices are sent verbatim,
// anything else is encoded as JSON.
func (s *Server) Handle(path string, status int, body any) {
	s.HandleDelayed(path, status, body, 0)
}

// HandleDelayed is Handle with a fixed response delay.
func (s *Server) HandleDelayed(path string, status int, body any, delay time.Duration) {
	var data []byte
	switch b := body.(type) {
	case string:
		data = []byte(b)
	case []byte:
		data = b
	default:
		data = lo.Must(json.Marshal(b))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route{status: status, body: data, delay: delay}
}

// Hits returns how many times path was requested.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests received on any path.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Sum(lo.Values(s.hits))
}

// Query returns the query string of the last request to path.
func (s *Server) Query(path string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[path]
}

// Header returns the headers of the last request to path.
func (s *Server) Header(path string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[path]
}

// Client returns a catalog client pointed at the server.
func (s *Server) Client(token string) *tmdb.Client {
	return lo.Must(tmdb.New(tmdb.Options{
		BaseURL:    s.URL + Prefix,
		Token:      token,
		Language:   "en-US",
		HTTPClient: s.Server.Client(),
	}))
}

// Movie registers the four per-title routes of a movie.
// Empty imdbID or trailerKey leave the matching route answering 404 or an empty list.
func (s *Server) Movie(id int, title, imdbID, trailerKey string, cast ...string) {
	s.Title(tmdb.Movie, tmdb.Details{ID: id, Title: title, ReleaseDate: "1999-03-31"}, imdbID, trailerKey, cast...)
}

// Title registers the four per-title routes for an arbitrary record.
func (s *Server) Title(kind tmdb.Kind, details tmdb.Details, imdbID, trailerKey string, cast ...string) {
	base := kind.Segment() + "/" + strconv.Itoa(details.ID)

	s.Handle(base, http.StatusOK, details)

	members := lo.Map(cast, func(name string, i int) tmdb.CastMember {
		return tmdb.CastMember{ID: i + 1, Name: name, Order: i}
	})
	s.Handle(base+"/credits", http.StatusOK, tmdb.Credits{ID: details.ID, Cast: members})

	if imdbID != "" {
		s.Handle(base+"/external_ids", http.StatusOK, tmdb.ExternalIDs{ID: details.ID, IMDbID: imdbID})
	}

	videos := tmdb.Videos{ID: details.ID, Results: []tmdb.Video{}}
	if trailerKey != "" {
		videos.Results = append(videos.Results, tmdb.Video{Key: trailerKey, Name: "Official Trailer", Site: "YouTube", Type: "Trailer"})
	}
	s.Handle(base+"/videos", http.StatusOK, videos)
}

// Summaries builds n consecutive summaries starting at firstID.
func Summaries(firstID, n int) []tmdb.Summary {
	return lo.Times(n, func(i int) tmdb.Summary {
		return tmdb.Summary{ID: firstID + i, Title: "Title " + strconv.Itoa(firstID+i)}
	})
}

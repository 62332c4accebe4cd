package tmdb

import "strings"

// Summary is a single entry of a listing or search page.
type Summary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`

	// MediaType is only set by mixed listings, "movie" or "tv".
	MediaType string `json:"media_type,omitempty"`
}

// DisplayTitle returns the movie title or the show name, whichever is set.
func (s Summary) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Page is one page of a paginated listing.
type Page struct {
	Page         int       `json:"page"`
	Results      []Summary `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Details is the base record of a movie or a TV show.
// Movie-only and TV-only fields are left zero for the other kind.
type Details struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title,omitempty"`
	Name                string           `json:"name,omitempty"`
	Tagline             string           `json:"tagline"`
	Overview            string           `json:"overview"`
	Status              string           `json:"status"`
	Homepage            string           `json:"homepage"`
	PosterPath          string           `json:"poster_path"`
	BackdropPath        string           `json:"backdrop_path"`
	ReleaseDate         string           `json:"release_date,omitempty"`
	FirstAirDate        string           `json:"first_air_date,omitempty"`
	Runtime             int              `json:"runtime,omitempty"`
	EpisodeRunTime      []int            `json:"episode_run_time,omitempty"`
	NumberOfSeasons     int              `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes    int              `json:"number_of_episodes,omitempty"`
	VoteAverage         float64          `json:"vote_average"`
	VoteCount           int              `json:"vote_count"`
	Genres              []Genre          `json:"genres"`
	SpokenLanguages     []SpokenLanguage `json:"spoken_languages"`
	ProductionCompanies []Company        `json:"production_companies"`
}

// DisplayTitle returns the movie title or the show name, whichever is set.
func (d Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Date returns the release date for movies and the first air date for shows.
func (d Details) Date() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}

// Year is the four-digit year of Date, or empty when unknown.
func (d Details) Year() string {
	date := d.Date()
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Minutes is the runtime of a movie or the first listed episode runtime of a show.
func (d Details) Minutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		return d.EpisodeRunTime[0]
	}
	return 0
}

// GenreNames joins genre names with commas.
func (d Details) GenreNames() string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

type ExternalIDs struct {
	ID         int    `json:"id"`
	IMDbID     string `json:"imdb_id"`
	WikidataID string `json:"wikidata_id"`
}

type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type Videos struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Account is the owner of the bearer token.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

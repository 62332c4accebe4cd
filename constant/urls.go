package constant

// Upstream endpoints used as configuration defaults.
const (
	TMDBBaseURL      = "https://api.themoviedb.org/3"
	TMDBImageBaseURL = "https://image.tmdb.org/t/p"
	TMDBSiteURL      = "https://www.themoviedb.org"
	IMDbTitleURL     = "https://www.imdb.com/title"
	YouTubeEmbedURL  = "https://www.youtube.com/embed"
	PlayerBaseURL    = "https://vidbinge.dev"
)

// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog API - credential, locale and upstream addresses.
const (
	TMDBToken        = "tmdb.token"
	TMDBLanguage     = "tmdb.language"
	TMDBBaseURL      = "tmdb.base_url"
	TMDBImageBaseURL = "tmdb.image_base_url"
	TMDBTimeout      = "tmdb.timeout"
)

// Browsing - page size, cast truncation and fetch parallelism.
const (
	BrowseResultsPerPage = "browse.results_per_page"
	BrowseCastLimit      = "browse.cast_limit"
	BrowseWorkers        = "browse.workers"
)

// Forward proxy applied to every outbound request.
const (
	ProxyEnabled = "proxy.enabled"
	ProxyScheme  = "proxy.scheme"
	ProxyHost    = "proxy.host"
	ProxyPort    = "proxy.port"
)

// Artwork cache bounds.
const (
	ImagesCacheSize = "images.cache_size"
	ImagesTTL       = "images.ttl"
)

// Playback hand-off.
const (
	PlaybackPlayerBase = "playback.player_base"
	PlaybackBrowser    = "playback.browser"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)

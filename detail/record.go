// Package detail assembles complete title records from the catalog's per-title endpoints.
package detail

import (
	"strings"

	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/mo"
)

// Sub-requests that may fail without failing the whole record.
const (
	PartCredits     = "credits"
	PartExternalIDs = "external_ids"
	PartVideos      = "videos"
)

// Trailer is a playable YouTube trailer.
type Trailer struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Record is the merged view of a title. It is never modified after Fetch returns it.
type Record struct {
	tmdb.Details

	Kind tmdb.Kind         `json:"kind"`
	Cast []tmdb.CastMember `json:"cast"`

	// ExternalID is the IMDb identifier, absent when unknown or when the lookup failed.
	ExternalID mo.Option[string]  `json:"imdb_id"`
	Trailer    mo.Option[Trailer] `json:"trailer"`

	// Degraded lists the sub-requests that failed.
	Degraded []string `json:"degraded,omitempty"`
}

// CastNames joins the cast names with commas.
func (r *Record) CastNames() string {
	names := make([]string, len(r.Cast))
	for i, c := range r.Cast {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// LanguageNames joins the english names of the spoken languages.
func (r *Record) LanguageNames() string {
	names := make([]string, 0, len(r.SpokenLanguages))
	for _, l := range r.SpokenLanguages {
		if l.EnglishName != "" {
			names = append(names, l.EnglishName)
		}
	}
	return strings.Join(names, ", ")
}

// CompanyNames joins the production company names.
func (r *Record) CompanyNames() string {
	names := make([]string, len(r.ProductionCompanies))
	for i, c := range r.ProductionCompanies {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// SelectTrailer picks the first YouTube video typed as a trailer.
func SelectTrailer(videos []tmdb.Video) mo.Option[Trailer] {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			return mo.Some(Trailer{
				Key:  v.Key,
				Name: v.Name,
				URL:  constant.YouTubeEmbedURL + "/" + v.Key,
			})
		}
	}
	return mo.None[Trailer]()
}

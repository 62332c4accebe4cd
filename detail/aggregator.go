package detail

import (
	"context"
	"errors"
	"fmt"

	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

// DefaultCastLimit is used when Options.CastLimit is not positive.
const DefaultCastLimit = 10

// ErrBaseUnavailable marks a fetch whose base record could not be retrieved.
var ErrBaseUnavailable = errors.New("base record unavailable")

// BaseUnavailableError wraps the transport failure of the base record request.
// It matches both ErrBaseUnavailable and the underlying error.
type BaseUnavailableError struct {
	ID   int
	Kind tmdb.Kind
	Err  error
}

func (e *BaseUnavailableError) Error() string {
	return fmt.Sprintf("%s %d: %v: %v", e.Kind, e.ID, ErrBaseUnavailable, e.Err)
}

func (e *BaseUnavailableError) Unwrap() []error {
	return []error{ErrBaseUnavailable, e.Err}
}

// Source is the subset of the catalog client the aggregator needs.
type Source interface {
	Details(ctx context.Context, kind tmdb.Kind, id int) (*tmdb.Details, error)
	Credits(ctx context.Context, kind tmdb.Kind, id int) (*tmdb.Credits, error)
	ExternalIDs(ctx context.Context, kind tmdb.Kind, id int) (*tmdb.ExternalIDs, error)
	Videos(ctx context.Context, kind tmdb.Kind, id int) (*tmdb.Videos, error)
}

type Options struct {
	CastLimit int
}

// Aggregator fans out the four per-title requests and merges them. It is safe for concurrent use.
type Aggregator struct {
	source    Source
	castLimit int
}

func New(source Source, options Options) *Aggregator {
	limit := options.CastLimit
	if limit <= 0 {
		limit = DefaultCastLimit
	}

	return &Aggregator{
		source:    source,
		castLimit: limit,
	}
}

// Fetch retrieves the base record, credits, external ids and videos of a title concurrently.
// Only a failed base record fails the fetch; other failures leave their fields empty
// and are listed in Record.Degraded.
func (a *Aggregator) Fetch(ctx context.Context, id int, kind tmdb.Kind) (*Record, error) {
	var (
		wg conc.WaitGroup

		details    *tmdb.Details
		detailsErr error
		credits    *tmdb.Credits
		creditsErr error
		ids        *tmdb.ExternalIDs
		idsErr     error
		videos     *tmdb.Videos
		videosErr  error
	)

	wg.Go(func() { details, detailsErr = a.source.Details(ctx, kind, id) })
	wg.Go(func() { credits, creditsErr = a.source.Credits(ctx, kind, id) })
	wg.Go(func() { ids, idsErr = a.source.ExternalIDs(ctx, kind, id) })
	wg.Go(func() { videos, videosErr = a.source.Videos(ctx, kind, id) })
	wg.Wait()

	entry := log.WithFields(logrus.Fields{"id": id, "kind": kind})

	if detailsErr != nil {
		entry.WithError(detailsErr).Warn("base record unavailable")
		return nil, &BaseUnavailableError{ID: id, Kind: kind, Err: detailsErr}
	}

	record := &Record{
		Details:    *details,
		Kind:       kind,
		Cast:       []tmdb.CastMember{},
		ExternalID: mo.None[string](),
		Trailer:    mo.None[Trailer](),
	}

	degrade := func(part string, err error) {
		entry.WithError(err).Warnf("%s unavailable", part)
		record.Degraded = append(record.Degraded, part)
	}

	if creditsErr != nil {
		degrade(PartCredits, creditsErr)
	} else if credits != nil {
		cast := credits.Cast
		if len(cast) > a.castLimit {
			cast = cast[:a.castLimit]
		}
		record.Cast = append(record.Cast, cast...)
	}

	if idsErr != nil {
		degrade(PartExternalIDs, idsErr)
	} else if ids != nil && ids.IMDbID != "" {
		record.ExternalID = mo.Some(ids.IMDbID)
	}

	if videosErr != nil {
		degrade(PartVideos, videosErr)
	} else if videos != nil {
		record.Trailer = SelectTrailer(videos.Results)
	}

	return record, nil
}

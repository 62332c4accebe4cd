// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/marquee-cli/marquee/artwork"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/config"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/network"
	"github.com/marquee-cli/marquee/open"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/marquee-cli/marquee/where"
	"github.com/marquee-cli/marquee/worker"
)

// app wires every component from one settings snapshot.
type app struct {
	settings   *config.Settings
	client     *tmdb.Client
	aggregator *detail.Aggregator
	artwork    *artwork.Resolver
	worker     *worker.Worker
	watchLater *watchlater.Store
	browser    *browse.Browser
}

func newApp() (*app, error) {
	settings := config.Load()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	httpClient, err := network.New(network.Options{
		Timeout: settings.Timeout,
		Proxy:   settings.Proxy.URL(),
	})
	if err != nil {
		return nil, err
	}

	client, err := tmdb.New(tmdb.Options{
		BaseURL:    settings.BaseURL,
		Token:      tmdb.ResolveToken(settings.Token),
		Language:   settings.Language,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, err
	}

	store, err := watchlater.Open(watchlater.NewFilePersister(where.WatchLater()))
	if err != nil {
		return nil, err
	}

	a := &app{
		settings:   settings,
		client:     client,
		aggregator: detail.New(client, detail.Options{CastLimit: settings.CastLimit}),
		artwork: artwork.NewResolver(artwork.Options{
			BaseURL:    settings.ImageBaseURL,
			HTTPClient: httpClient,
			Cache:      artwork.NewCache(settings.ImageCacheSize, settings.ImageTTL),
		}),
		worker:     worker.New(settings.Workers),
		watchLater: store,
	}

	a.browser = browse.NewBrowser(browse.Deps{
		Catalog:        client,
		Fetcher:        a.aggregator,
		Worker:         a.worker,
		WatchLater:     store,
		ResultsPerPage: settings.ResultsPerPage,
	})

	log.Infof("started with %d workers", settings.Workers)
	return a, nil
}

// mustApp builds the app or exits.
func mustApp() *app {
	a, err := newApp()
	handleErr(err)
	return a
}

func (a *app) Close() {
	a.worker.Close()
}

func (a *app) opener() playback.Opener {
	browser := a.settings.Browser
	return func(url string) error {
		return open.StartWith(url, browser)
	}
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

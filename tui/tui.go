// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/artwork"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Browser    *browse.Browser
	WatchLater *watchlater.Store
	Artwork    *artwork.Resolver
	Opener     playback.Opener
	PlayerBase string

	// Listing opens a listing right away instead of the listing menu.
	Listing mo.Option[browse.Listing]
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(ctx context.Context, options *Options) error {
	bubble := newBubble(ctx, options)
	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

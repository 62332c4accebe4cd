// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
)

// listItem implements the list.Item interface for listings and result slots.
type listItem struct {
	internal interface{}
	marked   bool
}

var listingDescriptions = map[browse.Listing]string{
	browse.Favorites:     "Movies you marked as favorite",
	browse.NowPlaying:    "Movies in theatres",
	browse.TopRated:      "Highest rated movies",
	browse.TVPopular:     "Popular TV shows",
	browse.TVAiringToday: "Shows with an episode today",
	browse.Search:        "Find a movie or a show",
	browse.WatchLater:    "Titles saved for later",
}

func titleOf(slot browse.Slot) string {
	if slot.Record != nil {
		return slot.Record.DisplayTitle()
	}
	if t := slot.Summary.DisplayTitle(); t != "" {
		return t
	}
	return fmt.Sprintf("#%d", slot.Summary.ID)
}

func kindIcon(kind tmdb.Kind) string {
	if kind == tmdb.TV {
		return icon.Get(icon.TV)
	}
	return icon.Get(icon.Movie)
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case browse.Listing:
		title = e.Title()
		if e == browse.Search {
			title = icon.Get(icon.Search) + " " + title
		}
	case browse.Slot:
		title = strings.TrimSpace(kindIcon(e.Kind) + " " + titleOf(e))
	case string:
		title = e
	}

	if title != "" && t.marked {
		mark := lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.WatchLater))
		title = fmt.Sprintf("%s %s", title, mark)
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case browse.Listing:
		description = listingDescriptions[e]
	case browse.Slot:
		switch {
		case e.Pending():
			description = style.Faint("loading details...")
		case e.Record == nil:
			description = lipgloss.NewStyle().Foreground(style.ErrorColor).Render("details unavailable")
		default:
			r := e.Record
			var parts []string

			if r.VoteAverage > 0 {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", r.VoteAverage)))
			}
			if year := r.Year(); year != "" {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(year))
			}
			if minutes := r.Minutes(); minutes > 0 {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprintf("%d min", minutes)))
			}
			if genres := r.GenreNames(); genres != "" {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(genres))
			}

			description = strings.Join(parts, " • ")
		}
	}

	return
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case browse.Listing:
		return e.Title()
	case browse.Slot:
		return titleOf(e)
	case string:
		return e
	default:
		return ""
	}
}

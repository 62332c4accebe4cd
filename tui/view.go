// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case listingsState:
		output = b.viewListings()
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = b.viewResults()
	case detailState:
		output = b.viewDetail()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewListings() string {
	return listExtraPaddingStyle.Render(b.listingsC.View())
}

func (b *statefulBubble) viewSearch() string {
	title := "Search Movies"
	if b.searchKind == tmdb.TV {
		title = "Search TV Shows"
	}

	lines := []string{
		style.Title(title),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, "", style.Faint("Tab "+icon.Get(icon.Link)+" "+suggestion))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	view := b.resultsC.View()

	var status string
	if b.current != nil {
		switch b.current.State() {
		case browse.StateLoading:
			status = fmt.Sprintf("%s Loading page %d", b.spinnerC.View(), b.current.Cursor().Requested)
		case browse.StateError:
			status = lipgloss.NewStyle().Foreground(style.ErrorColor).Render(
				fmt.Sprintf("%s Page %d failed: %v", icon.Get(icon.Fail), b.current.Cursor().Requested, b.current.Err()),
			) + style.Faint("  enter dismiss • r retry")
		}
	}

	if status != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, wrap.String(status, b.width))
	}

	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) viewDetail() string {
	r := b.selected
	if r == nil {
		return b.renderLines(true, []string{style.Title("Details")})
	}

	faint := lipgloss.NewStyle().Foreground(style.FaintColor)

	var facts []string
	facts = append(facts, kindIcon(r.Kind)+" "+r.Kind.String())
	if year := r.Year(); year != "" {
		facts = append(facts, year)
	}
	if minutes := r.Minutes(); minutes > 0 {
		facts = append(facts, fmt.Sprintf("%d min", minutes))
	}
	if r.Kind == tmdb.TV && r.NumberOfSeasons > 0 {
		facts = append(facts, fmt.Sprintf("%d seasons", r.NumberOfSeasons))
	}
	if r.VoteAverage > 0 {
		facts = append(facts, fmt.Sprintf("%s %.1f", icon.Get(icon.Star), r.VoteAverage))
	}

	lines := []string{
		style.Title(r.DisplayTitle()),
		"",
		faint.Render(strings.Join(facts, " • ")),
	}

	if r.Tagline != "" {
		lines = append(lines, style.Italic(r.Tagline))
	}

	if r.Overview != "" {
		lines = append(lines, "", wrap.String(r.Overview, b.width))
	}

	field := func(name, value string) {
		if value != "" {
			lines = append(lines, wrap.String(style.Fg(color.Purple)(name+": ")+value, b.width))
		}
	}

	lines = append(lines, "")
	field("Genres", r.GenreNames())
	field("Cast", r.CastNames())
	field("Languages", r.LanguageNames())
	field("Studios", r.CompanyNames())
	field("Poster", b.posterStatus())

	if len(r.Degraded) > 0 {
		lines = append(lines, faint.Render("Partially loaded, missing "+strings.Join(r.Degraded, ", ")))
	}

	if viper.GetBool(key.TUIShowURLs) {
		links := playback.LinksOf(b.options.PlayerBase, r)
		lines = append(lines, "")
		for _, l := range []struct{ name, url string }{
			{"Play", links.Embed},
			{"TMDB", links.TMDB},
			{"IMDb", links.IMDb},
			{"Trailer", links.Trailer},
		} {
			if l.url != "" {
				lines = append(lines, style.Truncate(b.width)(fmt.Sprintf("%s %s %s", icon.Get(icon.Link), l.name, faint.Render(l.url))))
			}
		}
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) posterStatus() string {
	switch {
	case b.selected == nil || b.selected.PosterPath == "":
		return ""
	case b.posterLoading:
		return b.spinnerC.View() + " fetching"
	}

	image, ok := b.poster.Get()
	if !ok {
		return "unavailable"
	}
	return fmt.Sprintf("%dx%d %s", image.Width, image.Height, image.Format)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// Package tui provides the primary terminal user interface implementation.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/query"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case pageMsg:
		return b, tea.Batch(cmd, b.handlePage(msg))
	case detailMsg:
		return b, tea.Batch(cmd, b.handleDetail(msg))
	case posterMsg:
		b.handlePoster(msg)
		return b, cmd
	case spinner.TickMsg:
		if !b.loading && !b.posterLoading {
			return b, cmd
		}
		var tick tea.Cmd
		b.spinnerC, tick = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, tick)
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			switch b.state {
			case listingsState:
				return b, cmd
			case searchState:
				b.inputC.SetValue("")
				b.searchSuggestion = mo.None[string]()
			case detailState:
				b.selected = nil
				b.posterLoading = false
			}

			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case listingsState:
		stateCmd = b.updateListings(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case resultsState:
		stateCmd = b.updateResults(msg)
	case detailState:
		stateCmd = b.updateDetail(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateListings(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.listingsC.SelectedItem().(*listItem); ok {
				return b.openListing(item.internal.(browse.Listing))
			}
		case bubblesKey.Matches(msg, b.keymap.search):
			return b.openListing(browse.Search)
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.listingsC.Items()); n > 0 && b.listingsC.Index() == 0 {
				b.listingsC.Select(n - 1)
				return nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.listingsC.Items()); n > 0 && b.listingsC.Index() == n-1 {
				b.listingsC.Select(0)
				return nil
			}
		}
	}

	var cmd tea.Cmd
	b.listingsC, cmd = b.listingsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b.submitSearch()
		case bubblesKey.Matches(msg, b.keymap.toggleKind):
			if b.searchKind == tmdb.Movie {
				b.setSearchKind(tmdb.TV)
			} else {
				b.setSearchKind(tmdb.Movie)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		b.searchSuggestion = query.Suggest(value)
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	c := b.current

	if msg, ok := msg.(tea.KeyMsg); ok && c != nil {
		slot, selected := b.selectedSlot()

		switch {
		case bubblesKey.Matches(msg, b.keymap.nextPage):
			return b.request(c, c.NextPage)
		case bubblesKey.Matches(msg, b.keymap.prevPage):
			return b.request(c, c.PrevPage)
		case bubblesKey.Matches(msg, b.keymap.retry):
			if c.State() == browse.StateError {
				return b.request(c, c.Retry)
			}
			return b.request(c, c.Reload)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if c.State() == browse.StateError {
				c.Acknowledge()
				return b.syncResults()
			}
			if selected {
				return b.showDetail(slot)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.watchLater):
			if selected {
				return b.toggleWatchLater(slot)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.play):
			if selected {
				return b.open(someIfNotEmpty(b.links(slot).Embed), "player")
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.trailer):
			if selected {
				return b.open(someIfNotEmpty(b.links(slot).Trailer), "trailer")
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.imdb):
			if selected {
				return b.open(someIfNotEmpty(b.links(slot).IMDb), "IMDb page")
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return nil
			}
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) tea.Cmd {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok || b.selected == nil {
		return nil
	}

	links := playback.LinksOf(b.options.PlayerBase, b.selected)

	switch {
	case bubblesKey.Matches(msgKey, b.keymap.play):
		return b.open(someIfNotEmpty(links.Embed), "player")
	case bubblesKey.Matches(msgKey, b.keymap.trailer):
		return b.open(someIfNotEmpty(links.Trailer), "trailer")
	case bubblesKey.Matches(msgKey, b.keymap.imdb):
		return b.open(someIfNotEmpty(links.IMDb), "IMDb page")
	case bubblesKey.Matches(msgKey, b.keymap.watchLater):
		if slot, ok := b.selectedSlot(); ok {
			return b.toggleWatchLater(slot)
		}
	case bubblesKey.Matches(msgKey, b.keymap.quit):
		return tea.Quit
	}

	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}

var _ list.Item = (*listItem)(nil)

// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/artwork"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/internal/ui"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/query"
	"github.com/marquee-cli/marquee/util"
	"github.com/marquee-cli/marquee/watchlater"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// pageMsg carries a finished page request back to the controller that issued it.
type pageMsg struct {
	controller *browse.Controller
	result     browse.PageResult
}

type detailMsg struct {
	controller *browse.Controller
	result     browse.DetailResult
}

type posterMsg struct {
	id    int
	image mo.Option[*artwork.Image]
}

func (b *statefulBubble) awaitPage(c *browse.Controller, pending *browse.PendingPage) tea.Cmd {
	return func() tea.Msg {
		return pageMsg{controller: c, result: pending.Await(b.ctx)}
	}
}

func (b *statefulBubble) awaitDetails(c *browse.Controller, pending []*browse.PendingDetail) tea.Cmd {
	return tea.Batch(lo.Map(pending, func(p *browse.PendingDetail, _ int) tea.Cmd {
		return func() tea.Msg {
			return detailMsg{controller: c, result: p.Await(b.ctx)}
		}
	})...)
}

// request starts a page load through one of the controller's navigation methods.
func (b *statefulBubble) request(c *browse.Controller, start func() (*browse.PendingPage, error)) tea.Cmd {
	pending, err := start()
	switch {
	case errors.Is(err, browse.ErrPageOutOfRange):
		return ui.Notify("No more pages")
	case err != nil:
		return ui.Notify(util.Capitalize(err.Error()))
	}

	return tea.Batch(b.startLoading(), b.awaitPage(c, pending))
}

func (b *statefulBubble) openListing(listing browse.Listing) tea.Cmd {
	if listing == browse.Search {
		b.inputC.SetValue("")
		b.searchSuggestion = mo.None[string]()
		b.inputC.Focus()
		b.newState(searchState)
		return textinput.Blink
	}

	return b.show(b.options.Browser.Controller(listing))
}

// show displays c, loading its first page when nothing was loaded yet.
func (b *statefulBubble) show(c *browse.Controller) tea.Cmd {
	b.current = c
	b.resultsC.ResetSelected()
	b.newState(resultsState)
	cmd := b.syncResults()

	if c.State() != browse.StateLoading {
		b.stopLoading()
	}

	if c.State() != browse.StateIdle {
		return cmd
	}

	switch {
	case c.Cursor().Page == 0:
		return tea.Batch(cmd, b.request(c, func() (*browse.PendingPage, error) {
			return c.RequestPage(1)
		}))
	case c.Listing() == browse.WatchLater:
		// entries may have changed since the page was loaded
		return tea.Batch(cmd, b.request(c, c.Reload))
	}

	return cmd
}

func (b *statefulBubble) handlePage(msg pageMsg) tea.Cmd {
	pending := msg.controller.ApplyPage(msg.result)
	details := b.awaitDetails(msg.controller, pending)

	if msg.controller != b.current {
		return details
	}

	if b.current.State() != browse.StateLoading {
		b.stopLoading()
	}

	if msg.result.Err == nil {
		b.resultsC.ResetSelected()
	}

	if b.current.Overshot() {
		return tea.Batch(b.syncResults(), details, b.request(b.current, b.current.Reload))
	}

	return tea.Batch(b.syncResults(), details)
}

func (b *statefulBubble) handleDetail(msg detailMsg) tea.Cmd {
	if !msg.controller.ApplyDetail(msg.result) || msg.controller != b.current {
		return nil
	}
	return b.syncResults()
}

func (b *statefulBubble) handlePoster(msg posterMsg) {
	if b.selected == nil || b.selected.ID != msg.id {
		return
	}
	b.posterLoading = false
	b.poster = msg.image
}

// syncResults rebuilds the result items from the current controller, keeping the cursor.
func (b *statefulBubble) syncResults() tea.Cmd {
	if b.current == nil {
		return nil
	}

	cursor := b.current.Cursor()
	title := b.current.Listing().Title()
	if q := b.options.Browser.Query(); b.current.Listing() == browse.Search && q.Text != "" {
		title = fmt.Sprintf("%s %q", title, q.Text)
	}
	if cursor.Page > 0 {
		title = fmt.Sprintf("%s · %d/%d", title, cursor.Page, cursor.TotalPages)
	}
	b.resultsC.Title = title

	index := b.resultsC.Index()
	items := lo.Map(b.current.Slots(), func(s browse.Slot, _ int) list.Item {
		return &listItem{internal: s, marked: b.savedForLater(s)}
	})

	cmd := b.resultsC.SetItems(items)
	if len(items) > 0 {
		b.resultsC.Select(min(index, len(items)-1))
	}
	return cmd
}

func (b *statefulBubble) selectedSlot() (browse.Slot, bool) {
	item, ok := b.resultsC.SelectedItem().(*listItem)
	if !ok {
		return browse.Slot{}, false
	}
	slot, ok := item.internal.(browse.Slot)
	return slot, ok
}

func (b *statefulBubble) showDetail(slot browse.Slot) tea.Cmd {
	switch {
	case slot.Pending():
		return ui.Notify("Details are still loading")
	case slot.Record == nil:
		return ui.Notify("Details unavailable: " + slot.Err.Error())
	}

	b.selected = slot.Record
	b.poster = mo.None[*artwork.Image]()
	b.newState(detailState)
	return b.resolvePoster(slot.Record.ID, slot.Record.PosterPath)
}

func (b *statefulBubble) resolvePoster(id int, path string) tea.Cmd {
	if path == "" || b.options.Artwork == nil {
		b.posterLoading = false
		return nil
	}

	b.posterLoading = true
	resolver := b.options.Artwork
	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		return posterMsg{id: id, image: resolver.Resolve(b.ctx, path, artwork.Poster)}
	})
}

func entryOf(slot browse.Slot) watchlater.Entry {
	return watchlater.Entry{ID: slot.Summary.ID, Kind: slot.Kind}
}

func (b *statefulBubble) savedForLater(slot browse.Slot) bool {
	return b.options.WatchLater != nil && b.options.WatchLater.Contains(entryOf(slot))
}

func (b *statefulBubble) toggleWatchLater(slot browse.Slot) tea.Cmd {
	store := b.options.WatchLater
	if store == nil {
		return nil
	}

	var (
		entry = entryOf(slot)
		added bool
		err   error
	)

	if store.Contains(entry) {
		_, err = store.Remove(entry)
	} else {
		added, err = store.Add(entry)
	}

	if err != nil {
		log.Error(err)
		return ui.Notify("Watch later not saved: " + err.Error())
	}

	return tea.Batch(b.syncResults(), ui.NotifyWatchLater(titleOf(slot), added))
}

func (b *statefulBubble) open(link mo.Option[string], what string) tea.Cmd {
	url, ok := link.Get()
	if !ok || url == "" {
		return ui.Notify("No " + what + " for this title")
	}

	if err := playback.Launch(b.options.Opener, url); err != nil {
		log.Error(err)
		return ui.Notify(util.Capitalize(err.Error()))
	}
	return ui.Notify("Opened " + what)
}

func (b *statefulBubble) links(slot browse.Slot) playback.Links {
	if slot.Record != nil {
		return playback.LinksOf(b.options.PlayerBase, slot.Record)
	}
	return playback.Links{
		Embed: playback.EmbedURL(b.options.PlayerBase, slot.Kind, slot.Summary.ID),
		TMDB:  playback.TMDBURL(slot.Kind, slot.Summary.ID),
	}
}

func (b *statefulBubble) submitSearch() tea.Cmd {
	text := strings.TrimSpace(b.inputC.Value())
	if text == "" {
		return nil
	}

	if err := query.Remember(text, 1); err != nil {
		log.Warn(err)
	}

	b.searchSuggestion = mo.None[string]()
	return b.show(b.options.Browser.Search(browse.SearchQuery{
		Text: text,
		Kind: b.searchKind,
	}))
}

func someIfNotEmpty(s string) mo.Option[string] {
	if s == "" {
		return mo.None[string]()
	}
	return mo.Some(s)
}

// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/artwork"
	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/internal/ui"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/marquee-cli/marquee/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble is the whole interface state. Every field is owned by the
// bubbletea loop; background work reports back through messages.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	listingsC list.Model
	resultsC  list.Model
	helpC     help.Model

	ctx     context.Context
	current *browse.Controller

	searchKind    tmdb.Kind
	selected      *detail.Record
	poster        mo.Option[*artwork.Image]
	posterLoading bool

	lastError error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s and records the current state for going back.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	// room for the status line under the results
	listHeight := height - yy - 2

	b.listingsC.SetSize(listWidth, listHeight)
	b.listingsC.Help.Width = listWidth

	b.resultsC.SetSize(listWidth, listHeight)
	b.resultsC.Help.Width = listWidth

	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return b.spinnerC.Tick
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		ctx:           ctx,
		notifier:      &ui.Model{},
		options:       options,
	}

	makeList := func(title string, titleStyle lipgloss.Style) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = titleStyle
		listC.Styles.NoItems = paddingStyle
		listC.SetFilteringEnabled(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)
	bubble.setSearchKind(tmdb.Movie)

	bubble.listingsC = makeList(
		fmt.Sprintf("%s v%s", constant.Marquee, constant.Version),
		lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
	)
	bubble.listingsC.SetItems(lo.Map(browse.Listings, func(l browse.Listing, _ int) list.Item {
		return &listItem{internal: l}
	}))

	bubble.resultsC = makeList(
		"Results",
		lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
	)
	bubble.resultsC.SetStatusBarItemName("title", "titles")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	return &bubble
}

func (b *statefulBubble) setSearchKind(kind tmdb.Kind) {
	b.searchKind = kind
	noun := "Movies"
	if kind == tmdb.TV {
		noun = "TV Shows"
	}
	b.inputC.Placeholder = fmt.Sprintf("Search %s (v%s)", noun, constant.Version)
}

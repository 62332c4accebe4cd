// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init opens the requested listing, or waits on the listing menu.
func (b *statefulBubble) Init() tea.Cmd {
	if listing, ok := b.options.Listing.Get(); ok {
		return b.openListing(listing)
	}
	return textinput.Blink
}

// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/style"
)

const notificationTTL = 3 * time.Second

// Model holds the notification currently shown under the main view.
type Model struct {
	notification string
	// id of the latest notification, so an older clear does not wipe a newer one
	id int
}

// NotificationMsg shows Text in the notification area.
type NotificationMsg struct {
	Text string
}

// ClearNotificationMsg resets the notification area if ID is still current.
type ClearNotificationMsg struct {
	ID int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// NotifyWatchLater reports the outcome of toggling a title in the watch later list.
func NotifyWatchLater(title string, added bool) tea.Cmd {
	if added {
		return Notify("Added " + title + " to watch later")
	}
	return Notify("Removed " + title + " from watch later")
}

func clearAfter(id int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return ClearNotificationMsg{ID: id}
	})
}

// Update processes notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.id++
		m.notification = msg.Text
		return clearAfter(m.id)
	case ClearNotificationMsg:
		if msg.ID == m.id {
			m.notification = ""
		}
	}
	return nil
}

// Notification is the text currently displayed.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the current notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := lipgloss.NewStyle().Foreground(style.FaintColor).Render(m.notification)
	lines[len(lines)-1] += "  " + notifier
	return strings.Join(lines, "\n")
}

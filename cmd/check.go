// Package cmd implements the command-line interface for marquee.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tmdb"
)

// CheckCredential exits with instructions when no API token is configured or stored.
func CheckCredential(configured string) {
	if tmdb.ResolveToken(configured) != "" {
		return
	}

	printMissingCredentialError()
	os.Exit(1)
}

func printMissingCredentialError() {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing API Token", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render("An API read access token from themoviedb.org is required.")

	command := style.New().Foreground(style.AccentColor).Bold(true)
	suggestion := fmt.Sprintf(
		"\n\nStore it in the system keyring:\n  %s\n\nor set it in the config:\n  %s",
		command.Render(constant.Marquee+" token set"),
		command.Render(constant.Marquee+" config set tmdb.token <token>"),
	)

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

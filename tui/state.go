// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	listingsState state = iota
	searchState
	resultsState
	detailState
	errorState
)

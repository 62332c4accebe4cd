package inline

import (
	"encoding/json"

	"github.com/marquee-cli/marquee/browse"
	"github.com/marquee-cli/marquee/detail"
	"github.com/marquee-cli/marquee/playback"
	"github.com/marquee-cli/marquee/tmdb"
)

type Entry struct {
	ID    int       `json:"id"`
	Kind  tmdb.Kind `json:"kind"`
	Title string    `json:"title"`
	// Record is absent when the detail fetch failed.
	Record *detail.Record  `json:"record,omitempty"`
	Links  *playback.Links `json:"links,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type Output struct {
	Listing    browse.Listing `json:"listing"`
	Query      string         `json:"query,omitempty"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []*Entry       `json:"results"`
}

func newEntry(slot browse.Slot, playerBase string) *Entry {
	entry := &Entry{
		ID:    slot.Summary.ID,
		Kind:  slot.Kind,
		Title: slot.Summary.DisplayTitle(),
	}

	if slot.Err != nil {
		entry.Error = slot.Err.Error()
	}

	if slot.Record != nil {
		links := playback.LinksOf(playerBase, slot.Record)
		entry.Record = slot.Record
		entry.Links = &links
		entry.Title = slot.Record.DisplayTitle()
	}

	return entry
}

func asJson(output *Output) ([]byte, error) {
	if output.Results == nil {
		output.Results = []*Entry{}
	}
	return json.Marshal(output)
}

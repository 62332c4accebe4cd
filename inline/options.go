// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marquee-cli/marquee/browse"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Picker narrows the loaded entries down before they are written.
type Picker func([]browse.Slot) []browse.Slot

type Options struct {
	Out     io.Writer
	Browser *browse.Browser
	Listing browse.Listing
	// Query is required for the search listing and ignored otherwise.
	Query      mo.Option[browse.SearchQuery]
	Page       int
	Json       bool
	PlayerBase string
	Picker     mo.Option[Picker]
}

// ParsePicker builds a picker from its name and argument.
// Supported kinds are "all", "first", "last", "index" and "exact".
func ParsePicker(kind, value string) (Picker, error) {
	switch kind {
	case "", "all":
		return func(slots []browse.Slot) []browse.Slot { return slots }, nil
	case "first":
		return func(slots []browse.Slot) []browse.Slot {
			return lo.Slice(slots, 0, 1)
		}, nil
	case "last":
		return func(slots []browse.Slot) []browse.Slot {
			return lo.Slice(slots, len(slots)-1, len(slots))
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(slots []browse.Slot) []browse.Slot {
			if len(slots) == 0 {
				return slots
			}
			i := min(int(idx), len(slots)-1)
			return slots[i : i+1]
		}, nil
	case "exact":
		return func(slots []browse.Slot) []browse.Slot {
			return lo.Filter(slots, func(s browse.Slot, _ int) bool {
				return strings.EqualFold(s.Summary.DisplayTitle(), value) ||
					(s.Record != nil && strings.EqualFold(s.Record.DisplayTitle(), value))
			})
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

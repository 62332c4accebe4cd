// Package query remembers past searches and suggests them back.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu      sync.Mutex
	cacher  *gache.Cache[map[string]*queryRecord]
	matches = make(map[string][]*queryRecord)
)

// store opens the history file on first use, so the path is resolved
// against whichever filesystem backend is active at that time.
func store() *gache.Cache[map[string]*queryRecord] {
	if cacher == nil {
		cacher = gache.New[map[string]*queryRecord](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

func load() map[string]*queryRecord {
	cached, expired, err := store().Get()
	if err != nil || expired || cached == nil {
		return make(map[string]*queryRecord)
	}
	return cached
}

// Remember records a search query or raises its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records := load()
	if record, ok := records[q]; ok {
		record.Rank += weight
	} else {
		records[q] = &queryRecord{Rank: weight, Query: q}
	}

	matches = make(map[string][]*queryRecord)
	return store().Set(records)
}

// Suggest returns the best ranked past query matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	records, ok := matches[q]
	if !ok {
		records = lo.Filter(lo.Values(load()), func(r *queryRecord, _ int) bool {
			return fuzzy.Match(q, r.Query)
		})

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		matches[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}

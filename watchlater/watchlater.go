// Package watchlater keeps the ordered, duplicate-free list of titles saved for later.
package watchlater

import (
	"sync"

	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/tmdb"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// Entry is a saved title.
type Entry struct {
	ID   int       `json:"id"`
	Kind tmdb.Kind `json:"kind"`
}

// Persister stores the list between runs.
type Persister interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

type filePersister struct {
	cacher *gache.Cache[[]Entry]
}

// NewFilePersister stores the list as JSON at path through the application filesystem.
func NewFilePersister(path string) Persister {
	return &filePersister{
		cacher: gache.New[[]Entry](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (p *filePersister) Load() ([]Entry, error) {
	cached, expired, err := p.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []Entry{}, nil
	}
	return cached, nil
}

func (p *filePersister) Save(entries []Entry) error {
	return p.cacher.Set(entries)
}

// Store is the in-memory list backed by a Persister. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	entries   []Entry
	persister Persister
}

// Open loads the persisted list.
func Open(persister Persister) (*Store, error) {
	entries, err := persister.Load()
	if err != nil {
		return nil, err
	}

	return &Store{
		entries:   lo.Uniq(entries),
		persister: persister,
	}, nil
}

// Add appends entry unless it is already saved and reports whether it was added.
// A failed save leaves the list unchanged.
func (s *Store) Add(entry Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.entries, entry) {
		return false, nil
	}

	next := append(append([]Entry(nil), s.entries...), entry)
	if err := s.persister.Save(next); err != nil {
		return false, err
	}

	s.entries = next
	return true, nil
}

// Remove drops entry and reports whether it was present.
func (s *Store) Remove(entry Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.Contains(s.entries, entry) {
		return false, nil
	}

	next := lo.Without(s.entries, entry)
	if err := s.persister.Save(next); err != nil {
		return false, err
	}

	s.entries = next
	return true, nil
}

func (s *Store) Contains(entry Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Contains(s.entries, entry)
}

// List returns a copy of the saved entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Page returns the entries of the 1-based page of the given size and the total page count.
// An empty list has a single empty page.
func (s *Store) Page(page, size int) ([]Entry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size < 1 {
		size = 1
	}

	total := (len(s.entries) + size - 1) / size
	if total == 0 {
		total = 1
	}

	if page < 1 || page > total {
		return []Entry{}, total
	}

	start := (page - 1) * size
	return append([]Entry(nil), lo.Subset(s.entries, start, uint(size))...), total
}

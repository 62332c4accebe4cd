package watchlater

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/tmdb"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type memoryPersister struct {
	saved []Entry
	fail  error
	saves int
}

func (m *memoryPersister) Load() ([]Entry, error) {
	return m.saved, nil
}

func (m *memoryPersister) Save(entries []Entry) error {
	if m.fail != nil {
		return m.fail
	}
	m.saves++
	m.saved = append([]Entry(nil), entries...)
	return nil
}

func TestStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		persister := &memoryPersister{}
		store, err := Open(persister)
		So(err, ShouldBeNil)

		matrix := Entry{ID: 603, Kind: tmdb.Movie}

		Convey("Adding the same id twice keeps a single entry", func() {
			added, err := store.Add(matrix)
			So(err, ShouldBeNil)
			So(added, ShouldBeTrue)

			added, err = store.Add(matrix)
			So(err, ShouldBeNil)
			So(added, ShouldBeFalse)

			So(store.Len(), ShouldEqual, 1)
			So(store.Contains(matrix), ShouldBeTrue)
			So(persister.saves, ShouldEqual, 1)
		})

		Convey("Entries keep insertion order", func() {
			for _, id := range []int{3, 1, 2} {
				_, _ = store.Add(Entry{ID: id})
			}
			So(store.List(), ShouldResemble, []Entry{{ID: 3}, {ID: 1}, {ID: 2}})
		})

		Convey("A show and a movie with the same id are distinct", func() {
			_, _ = store.Add(matrix)
			_, _ = store.Add(Entry{ID: 603, Kind: tmdb.TV})
			So(store.Len(), ShouldEqual, 2)
		})

		Convey("A failed save leaves the list unchanged", func() {
			persister.fail = errors.New("disk full")
			added, err := store.Add(matrix)
			So(err, ShouldNotBeNil)
			So(added, ShouldBeFalse)
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("Removing drops the entry", func() {
			_, _ = store.Add(matrix)
			removed, err := store.Remove(matrix)
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)
			So(store.Contains(matrix), ShouldBeFalse)

			removed, err = store.Remove(matrix)
			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})

		Convey("Pages split the list", func() {
			for id := 1; id <= 25; id++ {
				_, _ = store.Add(Entry{ID: id})
			}

			first, total := store.Page(1, 10)
			So(total, ShouldEqual, 3)
			So(first, ShouldHaveLength, 10)
			So(first[0].ID, ShouldEqual, 1)

			last, _ := store.Page(3, 10)
			So(last, ShouldHaveLength, 5)
			So(last[4].ID, ShouldEqual, 25)

			beyond, _ := store.Page(4, 10)
			So(beyond, ShouldBeEmpty)
		})

		Convey("An empty list has one empty page", func() {
			entries, total := store.Page(1, 10)
			So(entries, ShouldBeEmpty)
			So(total, ShouldEqual, 1)
		})
	})
}

func TestFilePersister(t *testing.T) {
	Convey("Given a file persister", t, func() {
		path := filepath.Join("config", "watch_later.json")
		store, err := Open(NewFilePersister(path))
		So(err, ShouldBeNil)

		_, err = store.Add(Entry{ID: 438631, Kind: tmdb.Movie})
		So(err, ShouldBeNil)
		_, err = store.Add(Entry{ID: 95396, Kind: tmdb.TV})
		So(err, ShouldBeNil)

		Convey("A new store over the same file sees the saved entries", func() {
			reopened, err := Open(NewFilePersister(path))
			So(err, ShouldBeNil)
			So(reopened.List(), ShouldResemble, []Entry{
				{ID: 438631, Kind: tmdb.Movie},
				{ID: 95396, Kind: tmdb.TV},
			})

			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}

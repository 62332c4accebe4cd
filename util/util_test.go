package util

import (
	"path/filepath"
	"testing"

	"github.com/marquee-cli/marquee/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("When deleting a file", func() {
			path := filepath.Join("root", "queries.json")
			lo.Must0(afero.WriteFile(fs, path, []byte("{}"), 0o644))

			Convey("Then it is gone", func() {
				So(Delete(path), ShouldBeNil)
				So(lo.Must(afero.Exists(fs, path)), ShouldBeFalse)
			})
		})

		Convey("When deleting a directory", func() {
			dir := filepath.Join("root", "cache")
			lo.Must0(afero.WriteFile(fs, filepath.Join(dir, "a", "b.json"), []byte("{}"), 0o644))

			Convey("Then the whole tree is removed", func() {
				So(Delete(dir), ShouldBeNil)
				So(lo.Must(afero.Exists(fs, dir)), ShouldBeFalse)
			})
		})

		Convey("When the path does not exist", func() {
			Convey("Then nothing fails", func() {
				So(Delete(filepath.Join("root", "missing")), ShouldBeNil)
			})
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)

		s.Push(3)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}

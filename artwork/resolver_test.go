package artwork

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func samplePNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

type cdn struct {
	*httptest.Server
	hits  atomic.Int32
	delay atomic.Int64
}

func newCDN() *cdn {
	c := &cdn{}
	poster := samplePNG(4, 6)

	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits.Add(1)
		time.Sleep(time.Duration(c.delay.Load()))

		switch r.URL.Path {
		case "/t/p/w342/poster.png", "/t/p/w500/poster.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(poster)
		case "/t/p/w342/broken.png":
			_, _ = w.Write([]byte("definitely not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	return c
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver in front of a CDN", t, func() {
		server := newCDN()
		defer server.Close()

		resolver := NewResolver(Options{
			BaseURL:    server.URL + "/t/p/",
			HTTPClient: server.Client(),
			Cache:      NewCache(8, time.Hour),
		})
		ctx := context.Background()

		Convey("The URL joins base, variant and path", func() {
			So(resolver.URL("/poster.png", Poster), ShouldEqual, server.URL+"/t/p/w342/poster.png")
			So(resolver.URL("poster.png", Large), ShouldEqual, server.URL+"/t/p/w500/poster.png")
		})

		Convey("An empty path resolves to absent without a request", func() {
			So(resolver.Resolve(ctx, "", Poster).IsAbsent(), ShouldBeTrue)
			So(server.hits.Load(), ShouldEqual, 0)
		})

		Convey("When resolving a poster", func() {
			img, ok := resolver.Resolve(ctx, "/poster.png", Poster).Get()

			Convey("It is decoded", func() {
				So(ok, ShouldBeTrue)
				So(img.Format, ShouldEqual, "png")
				So(img.Width, ShouldEqual, 4)
				So(img.Height, ShouldEqual, 6)
			})

			Convey("A second resolve is served from the cache", func() {
				again, ok := resolver.Resolve(ctx, "/poster.png", Poster).Get()
				So(ok, ShouldBeTrue)
				So(again, ShouldEqual, img)
				So(server.hits.Load(), ShouldEqual, 1)
			})

			Convey("Another variant is a separate entry", func() {
				So(resolver.Resolve(ctx, "/poster.png", Large).IsPresent(), ShouldBeTrue)
				So(server.hits.Load(), ShouldEqual, 2)
				So(resolver.Cache().Len(), ShouldEqual, 2)
			})

			Convey("After eviction it is fetched again", func() {
				So(resolver.Cache().Evict(Key{Path: "/poster.png", Variant: Poster}), ShouldBeTrue)
				So(resolver.Resolve(ctx, "/poster.png", Poster).IsPresent(), ShouldBeTrue)
				So(server.hits.Load(), ShouldEqual, 2)
			})
		})

		Convey("Undecodable bytes resolve to absent and are not cached", func() {
			So(resolver.Resolve(ctx, "/broken.png", Poster).IsAbsent(), ShouldBeTrue)
			So(resolver.Resolve(ctx, "/broken.png", Poster).IsAbsent(), ShouldBeTrue)
			So(server.hits.Load(), ShouldEqual, 2)
			So(resolver.Cache().Len(), ShouldEqual, 0)
		})

		Convey("A missing image resolves to absent", func() {
			So(resolver.Resolve(ctx, "/missing.jpg", Poster).IsAbsent(), ShouldBeTrue)
		})

		Convey("Concurrent resolves of one key share a download", func() {
			server.delay.Store(int64(50 * time.Millisecond))

			var wg sync.WaitGroup
			results := make([]*Image, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = resolver.Resolve(ctx, "/poster.png", Poster).OrEmpty()
				}(i)
			}
			wg.Wait()

			So(server.hits.Load(), ShouldEqual, 1)
			for _, r := range results {
				So(r, ShouldNotBeNil)
			}
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given a cache bounded to two entries", t, func() {
		cache := NewCache(2, 0)
		img := &Image{Format: "png"}

		cache.Add(Key{Path: "/a", Variant: Poster}, img)
		cache.Add(Key{Path: "/b", Variant: Poster}, img)
		cache.Add(Key{Path: "/c", Variant: Poster}, img)

		Convey("The least recently used entry is dropped", func() {
			So(cache.Len(), ShouldEqual, 2)
			_, ok := cache.Get(Key{Path: "/a", Variant: Poster})
			So(ok, ShouldBeFalse)
		})

		Convey("Purge empties it", func() {
			cache.Purge()
			So(cache.Len(), ShouldEqual, 0)
		})
	})

	Convey("Entries expire after the ttl", t, func() {
		cache := NewCache(2, 20*time.Millisecond)
		cache.Add(Key{Path: "/a", Variant: Poster}, &Image{})
		time.Sleep(60 * time.Millisecond)

		_, ok := cache.Get(Key{Path: "/a", Variant: Poster})
		So(ok, ShouldBeFalse)
	})
}

package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/log"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// maxImageSize caps a single download.
const maxImageSize = 16 << 20

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *Cache
}

// Resolver turns image paths into decoded images.
// Concurrent requests for the same key share a single download.
type Resolver struct {
	base  string
	http  *http.Client
	cache *Cache
	group singleflight.Group
}

func NewResolver(options Options) *Resolver {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cache := options.Cache
	if cache == nil {
		cache = NewCache(256, 0)
	}

	return &Resolver{
		base:  strings.TrimRight(options.BaseURL, "/"),
		http:  httpClient,
		cache: cache,
	}
}

// Cache exposes the resolver's cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// URL is the CDN address of path at variant.
func (r *Resolver) URL(path string, variant Variant) string {
	return r.base + "/" + string(variant) + normalize(path)
}

// Resolve returns the image at path, from the cache when possible.
// An empty path, a failed download or undecodable bytes all yield absent; failures are never cached.
func (r *Resolver) Resolve(ctx context.Context, path string, variant Variant) mo.Option[*Image] {
	if path == "" {
		return mo.None[*Image]()
	}

	key := Key{Path: normalize(path), Variant: variant}
	if img, ok := r.cache.Get(key); ok {
		return mo.Some(img)
	}

	v, err, _ := r.group.Do(key.String(), func() (any, error) {
		if img, ok := r.cache.Get(key); ok {
			return img, nil
		}

		img, err := r.fetch(ctx, key)
		if err != nil {
			return nil, err
		}

		r.cache.Add(key, img)
		return img, nil
	})
	if err != nil {
		log.WithFields(logrus.Fields{"image": key.String()}).WithError(err).Debug("image unavailable")
		return mo.None[*Image]()
	}

	return mo.Some(v.(*Image))
}

func (r *Resolver) fetch(ctx context.Context, key Key) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(key.Path, key.Variant), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode validates data as a jpeg, png, gif or webp image.
func Decode(data []byte) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	return &Image{
		Data:   data,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func normalize(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

package cardstack

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoding
)

// ImageLoader fetches and decodes one image.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// Load calls f(ctx, ref).
func (f ImageLoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// HTTPLoader loads images over HTTP(S).
type HTTPLoader struct {
	Client *http.Client // nil uses http.DefaultClient
}

// Load issues a GET for ref and decodes the body.
func (l HTTPLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", ref, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", ref, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// FSLoader loads images from a file system. A leading slash in ref is
// stripped, so "/images/1.png" resolves to "images/1.png" in FS.
type FSLoader struct {
	FS fs.FS
}

// Load opens ref in FS and decodes it.
func (l FSLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(ref, "/")
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// MultiLoader routes http and https references to Remote and everything
// else to Local.
type MultiLoader struct {
	Remote ImageLoader
	Local  ImageLoader
}

// Load dispatches on the scheme of ref.
func (l MultiLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	u, err := url.Parse(ref)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if l.Remote == nil {
			return nil, fmt.Errorf("load %s: no remote loader", ref)
		}
		return l.Remote.Load(ctx, ref)
	}
	if l.Local == nil {
		return nil, fmt.Errorf("load %s: no local loader", ref)
	}
	return l.Local.Load(ctx, ref)
}

package floaty

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
	"golang.org/x/sync/errgroup"
)

// LoadedImage is one element whose content is ready. Image is nil when the
// element already had content and nothing was decoded.
type LoadedImage struct {
	Element *Element
	Image   image.Image
}

// ImageLoader waits for elements' content to become ready. Load runs on its
// own goroutine and must not mutate the elements; the engine applies the
// results on the frame loop. Elements that fail are left out of the result
// and reported through the error, which may accompany a partial result.
type ImageLoader interface {
	Load(ctx context.Context, elements []*Element) ([]LoadedImage, error)
}

// ReadyLoader treats every element as ready immediately, whether or not it
// has content.
type ReadyLoader struct{}

// Load returns every element unchanged.
func (ReadyLoader) Load(ctx context.Context, elements []*Element) ([]LoadedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]LoadedImage, len(elements))
	for i, el := range elements {
		out[i] = LoadedImage{Element: el}
	}
	return out, nil
}

const defaultLoadConcurrency = 4

// FileLoader decodes each element's Src from FS, several at a time. Elements
// that are already Loaded are passed through without decoding. PNG, JPEG,
// GIF, BMP and WebP are supported.
type FileLoader struct {
	// FS is the file system Src paths are resolved in. nil uses the working
	// directory.
	FS fs.FS
	// Concurrency caps simultaneous decodes (default 4).
	Concurrency int
}

// ErrNoSource is reported for an element with neither content nor Src.
var ErrNoSource = errors.New("floaty: element has no image source")

// Load decodes every element's image. The result keeps input order.
func (l FileLoader) Load(ctx context.Context, elements []*Element) ([]LoadedImage, error) {
	fsys := l.FS
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	limit := l.Concurrency
	if limit <= 0 {
		limit = defaultLoadConcurrency
	}

	results := make([]LoadedImage, len(elements))
	errs := make([]error, len(elements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, el := range elements {
		if el.Loaded() {
			results[i] = LoadedImage{Element: el}
			continue
		}
		if el.Src == "" {
			errs[i] = fmt.Errorf("%s: %w", el.Name, ErrNoSource)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(fsys, el.Src)
			if err != nil {
				// One bad file must not cancel the rest.
				errs[i] = fmt.Errorf("%s: %w", el.Name, err)
				return nil
			}
			results[i] = LoadedImage{Element: el, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, r := range results {
		if r.Element != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

func decodeFile(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

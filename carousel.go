// Package carousel renders fixed-aspect-ratio slide images (1080x1350)
// from declarative slide descriptions: a background (flat color or a
// cropped, zoomed, panned photo with optional darkening overlay) plus a
// list of positioned elements — rich text with inline *highlight* spans,
// or photo tiles with optional rounded corners.
//
// Rendering never fails: unresolvable fonts and images, malformed colors,
// and unsatisfiable layout all degrade to documented fallbacks, and every
// input yields a raster canvas.
package carousel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"
)

// Canvas dimensions, constant for the whole system.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1350
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderSettings carries the per-slide values synthesized text elements
// draw on: the account handle and the "N/Total" counter.
type RenderSettings struct {
	// Username overrides the handle rendered by RoleUsername elements.
	Username string
	// SlideNumber is the 1-based index of the slide being rendered.
	SlideNumber int
	// SlideCount is the total number of slides in the deck.
	SlideCount int
}

// RenderOptions configures rendering.
type RenderOptions struct {
	// FontCache allows sharing a pre-configured FontCache across renders.
	// If nil, a new cache is created using FontDirs.
	FontCache *FontCache
	// FontDirs specifies additional directories to search for fonts.
	FontDirs []string
	// DefaultUsername is rendered by RoleUsername elements when no
	// override is supplied.
	DefaultUsername string
	// Workers bounds the number of slides rendered in parallel by
	// RenderDeck. Default: 4.
	Workers int
	// Format is the output format for the save helpers.
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Workers:     4,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// fontCache returns the configured cache, or a fresh one when unset. It
// never writes back to opts: options may be shared across concurrent
// render calls, so set FontCache explicitly to share font loading.
func (opts *RenderOptions) fontCache() *FontCache {
	if opts.FontCache != nil {
		return opts.FontCache
	}
	return NewFontCache(opts.FontDirs...)
}

// renderer paints one slide onto its exclusively owned canvas. Font
// faces carry mutable rasterizer state, so each renderer memoizes its
// own handles instead of sharing them across slides.
type renderer struct {
	img   *image.RGBA
	fonts *FontCache
	faces map[faceKey]font.Face
	opts  *RenderOptions
	load  func(string) image.Image
}

// RenderSlide renders one slide to a fresh 1080x1350 canvas. It has no
// error path: out-of-range fields are clamped in place and unresolvable
// resources degrade per their documented fallbacks.
func RenderSlide(slide *Slide, settings *RenderSettings, opts *RenderOptions) *image.RGBA {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	return renderSlide(slide, settings, opts, opts.fontCache(), LoadImage)
}

func renderSlide(slide *Slide, settings *RenderSettings, opts *RenderOptions, fonts *FontCache, load func(string) image.Image) *image.RGBA {
	slide.normalize()

	r := &renderer{
		img:   composeBackground(slide.Background, load),
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
		opts:  opts,
		load:  load,
	}
	for _, el := range slide.Elements {
		switch e := el.(type) {
		case *TextElement:
			r.paintText(e, settings)
		case *PhotoElement:
			r.paintPhoto(e)
		}
	}
	return r.img
}

// RenderDeck renders every slide of a deck on a bounded worker group.
// Slides are independent — each owns its canvas — so only the font cache
// and the per-deck image cache are shared, and both are concurrency-safe.
// Each distinct photo source is loaded once per call.
func RenderDeck(deck *Deck, opts *RenderOptions) []*image.RGBA {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	// Resolve the shared cache once, before the workers start.
	fonts := opts.fontCache()

	cache := newImageCache()
	images := make([]*image.RGBA, len(deck.Slides))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range deck.Slides {
		i := i
		g.Go(func() error {
			settings := &RenderSettings{
				Username:    deck.Username,
				SlideNumber: i + 1,
				SlideCount:  len(deck.Slides),
			}
			images[i] = renderSlide(&deck.Slides[i], settings, opts, fonts, cache.load)
			return nil
		})
	}
	_ = g.Wait() // renders never fail
	return images
}

// EncodeImage writes an image in the configured format.
func EncodeImage(w io.Writer, img image.Image, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// SaveImage renders an image to a file, creating parent directories.
func SaveImage(img image.Image, path string, opts *RenderOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return EncodeImage(f, img, opts)
}

// SaveDeckImages renders a deck and saves each slide. The pattern should
// contain %d for the 1-based slide number, e.g. "slide_%02d.png".
func SaveDeckImages(deck *Deck, pattern string, opts *RenderOptions) error {
	for i, img := range RenderDeck(deck, opts) {
		if err := SaveImage(img, fmt.Sprintf(pattern, i+1), opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// ImageToDataURI encodes an image as a base64 PNG data URI, the transport
// form callers embed in API responses.
func ImageToDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

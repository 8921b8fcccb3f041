package carousel

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// composeBackground builds the base canvas for one slide: a flat fill,
// optionally replaced by a cover-fit photo with pan/zoom, then darkened
// by the overlay. The source loader is injected so a deck render can
// memoize photo fetches.
func composeBackground(bg Background, load func(string) image.Image) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	fill := parseHexColor(bg.FillColor, colorWhite)
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)

	if bg.Photo != "" {
		if src := load(bg.Photo); src != nil {
			photo := coverFitCrop(src, CanvasWidth, CanvasHeight, bg.PhotoZoom, bg.PhotoX, bg.PhotoY)
			if photo != nil {
				draw.Draw(canvas, canvas.Bounds(), photo, photo.Bounds().Min, draw.Src)
			}
		}
	}

	applyOverlay(canvas, bg.Overlay, bg.OverlayStrength)
	return canvas
}

// coverFitCrop resizes src so it covers targetW x targetH after zoom,
// using a Lanczos filter, then crops exactly to the target dimensions.
// The pan percentages pick which region survives the crop: (0,0) keeps
// the top-left, (100,100) the bottom-right, (50,50) the center.
func coverFitCrop(src image.Image, targetW, targetH int, zoom, panX, panY float64) image.Image {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}

	w, h := coverFitSize(b.Dx(), b.Dy(), targetW, targetH, zoom)
	resized := imaging.Resize(src, w, h, imaging.Lanczos)

	offX := cropOffset(w, targetW, panX)
	offY := cropOffset(h, targetH, panY)
	return imaging.Crop(resized, image.Rect(offX, offY, offX+targetW, offY+targetH))
}

// gradientStart is the fraction of the canvas height where the gradient
// overlay begins; rows above it stay untouched.
const gradientStart = 0.4

// applyOverlay darkens the canvas in place. Full covers every row with a
// uniform black layer of alpha 255*strength/100; gradient ramps the alpha
// linearly from 0 at gradientStart of the height to the full value at the
// bottom row, a bottom-anchored vignette that keeps lower text legible.
func applyOverlay(canvas *image.RGBA, kind OverlayKind, strength int) {
	if kind == OverlayNone {
		return
	}
	if strength < 0 {
		strength = 0
	} else if strength > 100 {
		strength = 100
	}
	if strength == 0 {
		return
	}
	maxAlpha := 255 * float64(strength) / 100

	b := canvas.Bounds()
	height := b.Dy()
	startRow := int(gradientStart * float64(height))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		alpha := maxAlpha
		if kind == OverlayGradient {
			row := y - b.Min.Y
			if row < startRow {
				continue
			}
			span := height - 1 - startRow
			if span > 0 {
				alpha = maxAlpha * float64(row-startRow) / float64(span)
			}
		}
		darkenRow(canvas, y, alpha)
	}
}

// darkenRow alpha-blends a black layer of the given alpha over one row and
// flattens back to opaque RGB.
func darkenRow(canvas *image.RGBA, y int, alpha float64) {
	keep := uint32(256 * (255 - alpha) / 255)
	b := canvas.Bounds()
	row := canvas.Pix[canvas.PixOffset(b.Min.X, y):canvas.PixOffset(b.Max.X, y)]
	for i := 0; i+3 < len(row); i += 4 {
		row[i] = uint8(uint32(row[i]) * keep >> 8)
		row[i+1] = uint8(uint32(row[i+1]) * keep >> 8)
		row[i+2] = uint8(uint32(row[i+2]) * keep >> 8)
		row[i+3] = 255
	}
}

package carousel

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
)

// paintPhoto composites a photo element onto the canvas. The photo is
// cover-fit to the element's box with a centered crop; there is no
// pan/zoom control at the element level. A failed load is a no-op.
func (r *renderer) paintPhoto(el *PhotoElement) {
	if el.Width <= 0 || el.Height <= 0 {
		return
	}
	src := r.load(el.Photo)
	if src == nil {
		return
	}

	fitted := coverFitCrop(src, el.Width, el.Height, 1, 50, 50)
	if fitted == nil {
		return
	}
	box := image.Rect(el.X, el.Y, el.X+el.Width, el.Y+el.Height)

	if el.CornerRadius > 0 {
		mask := roundedMask(el.Width, el.Height, el.CornerRadius)
		draw.DrawMask(r.img, box, fitted, fitted.Bounds().Min, mask, image.Point{}, draw.Over)
		return
	}
	// Over respects any alpha the source itself carries.
	draw.Draw(r.img, box, fitted, fitted.Bounds().Min, draw.Over)
}

// roundedMask builds a single-channel alpha mask holding a filled rounded
// rectangle. The radius is radiusPercent of the shorter box side, capped at
// half that side (beyond which the arcs would self-intersect); 100 percent
// on a square box therefore yields a circle.
func roundedMask(w, h, radiusPercent int) *image.Alpha {
	short := w
	if h < short {
		short = h
	}
	radius := float64(radiusPercent) / 100 * float64(short)
	if max := float64(short) / 2; radius > max {
		radius = max
	}

	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.AsMask()
}

package carousel

import (
	"image/color"
	"strings"
)

// parseHexColor parses a hex color string into an opaque RGBA value.
// Accepts 6-char RGB ("112233") or 8-char ARGB ("FF112233"), with or
// without a leading "#". The alpha digits of an ARGB string are ignored;
// the engine paints onto an opaque canvas. Malformed strings return the
// given fallback.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return fallback
	}
	var rgb [3]uint8
	for i := range rgb {
		h := hexVal(s[i*2])
		l := hexVal(s[i*2+1])
		if h < 0 || l < 0 {
			return fallback
		}
		rgb[i] = uint8(h<<4 | l)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// applyOpacity darkens a color toward black by scaling each channel by
// opacity/100. This is not alpha blending: the canvas is opaque and text
// is painted directly.
func applyOpacity(c color.RGBA, opacity int) color.RGBA {
	if opacity >= 100 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.R = uint8(int(c.R) * opacity / 100)
	c.G = uint8(int(c.G) * opacity / 100)
	c.B = uint8(int(c.B) * opacity / 100)
	return c
}

var (
	colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBlack = color.RGBA{A: 255}
)

package carousel

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#112233", color.RGBA{R: 17, G: 34, B: 51, A: 255}},
		{"112233", color.RGBA{R: 17, G: 34, B: 51, A: 255}},
		{"#FFC8FF00", color.RGBA{R: 200, G: 255, B: 0, A: 255}}, // ARGB, alpha ignored
		{"#c8ff00", color.RGBA{R: 200, G: 255, B: 0, A: 255}},
		{"", colorBlack},
		{"#12", colorBlack},
		{"#11223g", colorBlack},
		{"not a color", colorBlack},
	}
	for _, tt := range tests {
		if got := parseHexColor(tt.in, colorBlack); got != tt.want {
			t.Errorf("parseHexColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseHexColor_FallbackPerContext(t *testing.T) {
	if got := parseHexColor("bogus", colorWhite); got != colorWhite {
		t.Errorf("expected the caller's fallback, got %v", got)
	}
}

func TestApplyOpacity(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if got := applyOpacity(c, 100); got != c {
		t.Errorf("opacity 100 must be identity, got %v", got)
	}
	if got := applyOpacity(c, 50); got != (color.RGBA{R: 100, G: 50, B: 25, A: 255}) {
		t.Errorf("opacity 50 must halve channels, got %v", got)
	}
	if got := applyOpacity(c, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("opacity 0 must be black, got %v", got)
	}
	if got := applyOpacity(c, -5); got != (color.RGBA{A: 255}) {
		t.Errorf("negative opacity clamps to 0, got %v", got)
	}
}

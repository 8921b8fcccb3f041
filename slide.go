package carousel

import (
	"encoding/json"
	"fmt"
)

// OverlayKind selects how the darkening overlay is applied over the background.
type OverlayKind string

const (
	// OverlayNone disables the overlay regardless of strength.
	OverlayNone OverlayKind = "none"
	// OverlayFull darkens the whole canvas uniformly.
	OverlayFull OverlayKind = "full"
	// OverlayGradient darkens from 40% of the canvas height downward,
	// reaching full strength at the bottom row.
	OverlayGradient OverlayKind = "gradient"
)

// Alignment is the horizontal alignment of a text element relative to its anchor.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// TextRole marks a text element whose content is synthesized at render time
// instead of taken from Content.
type TextRole string

const (
	// RolePlain renders Content as-is.
	RolePlain TextRole = "plain"
	// RoleUsername renders the deck username (or the configured default handle).
	RoleUsername TextRole = "username"
	// RoleSlideNumber renders "current/total", e.g. "3/10".
	RoleSlideNumber TextRole = "slide_number"
)

// Background describes the base layer of a slide: a flat fill color,
// optionally covered by a photo with pan/zoom, plus a darkening overlay.
type Background struct {
	// FillColor is a hex color string ("#112233"). Unparsable values fall
	// back to white.
	FillColor string `json:"fill_color"`
	// Photo is an image source: data URI, http(s) URL, or local path.
	// Empty means flat color only.
	Photo string `json:"photo"`
	// PhotoX and PhotoY pan the cover-fit crop, in percent. 0 shows the
	// left/top edge, 100 the right/bottom edge, 50 is centered.
	PhotoX float64 `json:"photo_x"`
	PhotoY float64 `json:"photo_y"`
	// PhotoZoom scales the cover-fit photo. Values below 1 are clamped to 1,
	// so the photo never shrinks below cover-fit.
	PhotoZoom float64 `json:"photo_zoom"`
	// OverlayStrength is the overlay darkness, 0-100.
	OverlayStrength int `json:"overlay_strength"`
	// Overlay selects the overlay shape. Unrecognized values behave as full.
	Overlay OverlayKind `json:"overlay"`
}

// DefaultBackground returns a Background with all defaults resolved:
// white fill, no photo, centered position, zoom 1, no darkening.
func DefaultBackground() Background {
	return Background{
		FillColor: "#ffffff",
		PhotoX:    50,
		PhotoY:    50,
		PhotoZoom: 1,
		Overlay:   OverlayFull,
	}
}

// UnmarshalJSON decodes a Background, resolving absent fields to their
// documented defaults.
func (b *Background) UnmarshalJSON(data []byte) error {
	*b = DefaultBackground()
	type background Background
	return json.Unmarshal(data, (*background)(b))
}

// normalize clamps out-of-range fields to their valid domains.
func (b *Background) normalize() {
	if b.PhotoZoom < 1 {
		b.PhotoZoom = 1
	}
	b.PhotoX = clampPercent(b.PhotoX)
	b.PhotoY = clampPercent(b.PhotoY)
	if b.OverlayStrength < 0 {
		b.OverlayStrength = 0
	} else if b.OverlayStrength > 100 {
		b.OverlayStrength = 100
	}
}

// Element is a positioned item painted onto a slide. The two concrete
// kinds are *TextElement and *PhotoElement; elements are painted in list
// order, so later elements overlay earlier ones.
type Element interface {
	element()
}

// TextElement is rich text anchored at (X, Y). Content may embed literal
// newlines and *highlight* markers; a highlighted span is painted with
// HighlightColor instead of Color.
type TextElement struct {
	Content string `json:"content"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	// FontFamily is the base family name, e.g. "Inter".
	FontFamily string `json:"font_family"`
	// FontSize is the glyph size in pixels.
	FontSize int `json:"font_size"`
	// FontWeight is one of 300, 400, 500, 600, 700, 800, 900.
	// Other values behave as 400.
	FontWeight int `json:"font_weight"`
	// Color and HighlightColor are hex color strings. Unparsable values
	// fall back to black.
	Color          string `json:"color"`
	HighlightColor string `json:"highlight_color"`
	// Opacity darkens the text toward black, 0-100. 100 paints the colors
	// unchanged.
	Opacity int `json:"opacity"`
	// LineHeight is the line advance factor; each line advances the vertical
	// cursor by FontSize*LineHeight.
	LineHeight float64 `json:"line_height"`
	// MaxWidth is the wrap width in pixels. 0 disables wrapping.
	MaxWidth int `json:"max_width"`
	// Align positions each line relative to X.
	Align Alignment `json:"align"`
	// Role selects synthesized content; see TextRole.
	Role TextRole `json:"role"`
}

func (*TextElement) element() {}

// DefaultTextElement returns a TextElement with all defaults resolved.
func DefaultTextElement() TextElement {
	return TextElement{
		FontFamily:     "Inter",
		FontSize:       48,
		FontWeight:     400,
		Color:          "#ffffff",
		HighlightColor: "#c8ff00",
		Opacity:        100,
		LineHeight:     1.2,
		Align:          AlignLeft,
		Role:           RolePlain,
	}
}

// UnmarshalJSON decodes a TextElement, resolving absent fields to their
// documented defaults.
func (t *TextElement) UnmarshalJSON(data []byte) error {
	*t = DefaultTextElement()
	type textElement TextElement
	return json.Unmarshal(data, (*textElement)(t))
}

func (t *TextElement) normalize() {
	if t.FontSize <= 0 {
		t.FontSize = 48
	}
	switch t.FontWeight {
	case 300, 400, 500, 600, 700, 800, 900:
	default:
		t.FontWeight = 400
	}
	if t.Opacity < 0 {
		t.Opacity = 0
	} else if t.Opacity > 100 {
		t.Opacity = 100
	}
	if t.LineHeight <= 0 {
		t.LineHeight = 1.2
	}
	if t.MaxWidth < 0 {
		t.MaxWidth = 0
	}
	switch t.Align {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		t.Align = AlignLeft
	}
	switch t.Role {
	case RolePlain, RoleUsername, RoleSlideNumber:
	default:
		t.Role = RolePlain
	}
}

// PhotoElement is a photo pasted into the box (X, Y, Width, Height) with
// cover-fit cropping and optional rounded corners.
type PhotoElement struct {
	// Photo is an image source: data URI, http(s) URL, or local path.
	Photo  string `json:"photo"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// CornerRadius is the corner rounding in percent of the shorter box
	// side, 0-100. 100 on a square box yields a circle.
	CornerRadius int `json:"corner_radius"`
}

func (*PhotoElement) element() {}

// UnmarshalJSON decodes a PhotoElement; all fields default to zero.
func (p *PhotoElement) UnmarshalJSON(data []byte) error {
	*p = PhotoElement{}
	type photoElement PhotoElement
	return json.Unmarshal(data, (*photoElement)(p))
}

func (p *PhotoElement) normalize() {
	if p.CornerRadius < 0 {
		p.CornerRadius = 0
	} else if p.CornerRadius > 100 {
		p.CornerRadius = 100
	}
}

// Slide is one renderable page: a background plus an ordered list of elements.
// Slides are ephemeral; the engine never retains them across render calls.
type Slide struct {
	Background Background `json:"background"`
	Elements   []Element  `json:"elements"`
}

func (s *Slide) normalize() {
	s.Background.normalize()
	for _, el := range s.Elements {
		switch e := el.(type) {
		case *TextElement:
			e.normalize()
		case *PhotoElement:
			e.normalize()
		}
	}
}

// UnmarshalJSON decodes a slide document. Elements are dispatched on their
// "type" field: "text" (the default when absent) or "photo".
func (s *Slide) UnmarshalJSON(data []byte) error {
	var doc struct {
		Background Background        `json:"background"`
		Elements   []json.RawMessage `json:"elements"`
	}
	doc.Background = DefaultBackground()
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	s.Background = doc.Background
	s.Elements = nil
	for i, raw := range doc.Elements {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		switch head.Type {
		case "", "text":
			el := new(TextElement)
			if err := json.Unmarshal(raw, el); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			s.Elements = append(s.Elements, el)
		case "photo":
			el := new(PhotoElement)
			if err := json.Unmarshal(raw, el); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			s.Elements = append(s.Elements, el)
		default:
			return fmt.Errorf("element %d: unknown type %q", i, head.Type)
		}
	}
	return nil
}

// Deck is an ordered collection of slides rendered as one carousel.
type Deck struct {
	// Username overrides the handle rendered by RoleUsername elements.
	Username string  `json:"username"`
	Slides   []Slide `json:"slides"`
}

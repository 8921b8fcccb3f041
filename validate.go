package carousel

import (
	"fmt"
	"strings"
)

// Validate checks a deck for structural issues and returns an error
// describing all problems found, or nil if the deck is valid. Rendering
// itself never fails — out-of-range fields are clamped — so Validate is
// for callers that want to reject malformed documents up front instead
// of silently rendering their fallbacks.
func (d *Deck) Validate() error {
	var errs []string

	if len(d.Slides) == 0 {
		errs = append(errs, "deck must have at least one slide")
	}

	for i := range d.Slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		for _, e := range validateSlide(&d.Slides[i]) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string

	bg := s.Background
	if bg.PhotoZoom < 1 && bg.PhotoZoom != 0 {
		errs = append(errs, "background photo zoom must be >= 1")
	}
	if bg.OverlayStrength < 0 || bg.OverlayStrength > 100 {
		errs = append(errs, "background overlay strength must be in 0-100")
	}
	switch bg.Overlay {
	case "", OverlayNone, OverlayFull, OverlayGradient:
	default:
		errs = append(errs, "background overlay kind is unknown: "+string(bg.Overlay))
	}

	for j, el := range s.Elements {
		prefix := fmt.Sprintf("element %d", j+1)
		if el == nil {
			errs = append(errs, prefix+": element is nil")
			continue
		}
		switch e := el.(type) {
		case *TextElement:
			switch e.FontWeight {
			case 0, 300, 400, 500, 600, 700, 800, 900:
			default:
				errs = append(errs, fmt.Sprintf("%s: font weight %d is not a recognized weight", prefix, e.FontWeight))
			}
			if e.Opacity < 0 || e.Opacity > 100 {
				errs = append(errs, prefix+": opacity must be in 0-100")
			}
			if e.MaxWidth < 0 {
				errs = append(errs, prefix+": max width is negative")
			}
			switch e.Align {
			case "", AlignLeft, AlignCenter, AlignRight:
			default:
				errs = append(errs, prefix+": alignment is unknown: "+string(e.Align))
			}
			switch e.Role {
			case "", RolePlain, RoleUsername, RoleSlideNumber:
			default:
				errs = append(errs, prefix+": role is unknown: "+string(e.Role))
			}
		case *PhotoElement:
			if e.Photo == "" {
				errs = append(errs, prefix+": photo element has no image source")
			}
			if e.Width <= 0 || e.Height <= 0 {
				errs = append(errs, prefix+": photo box must have positive dimensions")
			}
			if e.CornerRadius < 0 || e.CornerRadius > 100 {
				errs = append(errs, prefix+": corner radius must be in 0-100")
			}
		}
	}

	return errs
}

package carousel

import (
	"fmt"
	"image"
	"regexp"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// highlightPattern matches a non-greedy, non-nesting *highlight* span.
// The dot does not match newlines, so a span never crosses a line break;
// unmatched or empty markers fall through as literal asterisks.
var highlightPattern = regexp.MustCompile(`\*(.+?)\*`)

// textRun is a contiguous piece of content sharing one highlight tag.
type textRun struct {
	text        string
	highlighted bool
}

// segmentContent splits content into plain and highlighted runs. Content
// with no markers yields exactly one plain run equal to the input; empty
// content yields no runs.
func segmentContent(content string) []textRun {
	var runs []textRun
	rest := content
	for {
		loc := highlightPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			runs = append(runs, textRun{text: rest[:loc[0]]})
		}
		runs = append(runs, textRun{text: rest[loc[2]:loc[3]], highlighted: true})
		rest = rest[loc[1]:]
	}
	if rest != "" {
		runs = append(runs, textRun{text: rest})
	}
	return runs
}

// styledWord is a word (or inter-word space) carrying its highlight tag.
type styledWord struct {
	word        string
	highlighted bool
}

// textLine is one laid-out line: adjacent same-tag words merged into runs,
// with the total rendered width precomputed for alignment.
type textLine struct {
	runs  []textRun
	width int
}

// layoutLines greedy-wraps segmented content to maxWidth, measuring with
// the given face. Explicit newlines force hard breaks (consecutive
// newlines emit empty lines); within each chunk, a word that would push
// the line past maxWidth starts a new line, unless it is the line's first
// word, which may overflow. maxWidth <= 0 disables wrapping. Spaces
// between words are re-inserted as their own plain runs.
func layoutLines(segments []textRun, face font.Face, maxWidth int) []textLine {
	var lines []textLine
	var current []styledWord
	joined := ""

	flush := func() {
		lines = append(lines, buildTextLine(current, face))
		current = nil
		joined = ""
	}

	for _, seg := range segments {
		for i, chunk := range strings.Split(seg.text, "\n") {
			if i > 0 {
				flush()
			}
			for _, word := range strings.Fields(chunk) {
				candidate := word
				if joined != "" {
					candidate = joined + " " + word
				}
				if maxWidth > 0 && len(current) > 0 &&
					font.MeasureString(face, candidate).Ceil() > maxWidth {
					flush()
					candidate = word
				}
				if joined != "" {
					current = append(current, styledWord{word: " "})
				}
				current = append(current, styledWord{word: word, highlighted: seg.highlighted})
				joined = candidate
			}
		}
	}
	if len(current) > 0 {
		flush()
	}
	return lines
}

// buildTextLine merges adjacent same-tag words into runs and sums their
// measured widths.
func buildTextLine(words []styledWord, face font.Face) textLine {
	var line textLine
	for _, sw := range words {
		n := len(line.runs)
		if n > 0 && line.runs[n-1].highlighted == sw.highlighted {
			line.runs[n-1].text += sw.word
			continue
		}
		line.runs = append(line.runs, textRun{text: sw.word, highlighted: sw.highlighted})
	}
	for _, run := range line.runs {
		line.width += font.MeasureString(face, run.text).Ceil()
	}
	return line
}

// materializeContent resolves the element's effective content. Username and
// slide-number roles synthesize their text from the render settings; plain
// content is taken literally (any template substitution happened upstream).
func materializeContent(el *TextElement, settings *RenderSettings, defaultUsername string) string {
	switch el.Role {
	case RoleUsername:
		if settings != nil && settings.Username != "" {
			return settings.Username
		}
		return defaultUsername
	case RoleSlideNumber:
		if settings == nil {
			return el.Content
		}
		return fmt.Sprintf("%d/%d", settings.SlideNumber, settings.SlideCount)
	default:
		return el.Content
	}
}

// faceKey identifies a visual text style: weight-folded family plus size.
type faceKey struct {
	family string
	size   float64
}

// face returns the canvas-scoped handle for a visual style. Within one
// render, requesting the same style twice returns the same handle; the
// handle is never shared with another render, because faces mutate
// internal buffers while rasterizing.
func (r *renderer) face(family string, size float64, weight int) font.Face {
	key := faceKey{family: styledKey(family, weight), size: size}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.fonts.Resolve(family, size, weight)
	r.faces[key] = f
	return f
}

// paintText lays out and paints a text element onto the canvas.
func (r *renderer) paintText(el *TextElement, settings *RenderSettings) {
	content := materializeContent(el, settings, r.opts.DefaultUsername)
	if content == "" {
		return
	}

	face := r.face(el.FontFamily, float64(el.FontSize), el.FontWeight)
	baseColor := applyOpacity(parseHexColor(el.Color, colorBlack), el.Opacity)
	highlight := applyOpacity(parseHexColor(el.HighlightColor, colorBlack), el.Opacity)

	lines := layoutLines(segmentContent(content), face, el.MaxWidth)

	ascent := face.Metrics().Ascent.Ceil()
	advance := int(float64(el.FontSize) * el.LineHeight)
	y := el.Y

	for _, line := range lines {
		x := el.X
		switch el.Align {
		case AlignRight:
			x -= line.width
		case AlignCenter:
			x -= line.width / 2
		}

		for _, run := range line.runs {
			c := baseColor
			if run.highlighted {
				c = highlight
			}
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{c},
				Face: face,
				Dot:  fixed.P(x, y+ascent),
			}
			d.DrawString(run.text)
			x += font.MeasureString(face, run.text).Ceil()
		}
		y += advance
	}
}

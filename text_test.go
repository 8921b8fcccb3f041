package carousel

import (
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func TestSegmentContent_RoundTrip(t *testing.T) {
	const content = "no markers in here"
	runs := segmentContent(content)
	if len(runs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(runs))
	}
	if runs[0].highlighted {
		t.Error("expected plain segment")
	}
	if runs[0].text != content {
		t.Errorf("expected %q, got %q", content, runs[0].text)
	}
}

func TestSegmentContent_Highlight(t *testing.T) {
	runs := segmentContent("Hello *world* again")
	want := []textRun{
		{text: "Hello ", highlighted: false},
		{text: "world", highlighted: true},
		{text: " again", highlighted: false},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %v", len(want), len(runs), runs)
	}
	for i, w := range want {
		if runs[i] != w {
			t.Errorf("segment %d: expected %+v, got %+v", i, w, runs[i])
		}
	}
}

// An unmatched marker renders literally as part of one plain segment;
// no highlight is emitted.
func TestSegmentContent_UnmatchedMarker(t *testing.T) {
	for _, content := range []string{"*rest of string", "a*b", "trailing*", "**"} {
		runs := segmentContent(content)
		if len(runs) != 1 {
			t.Fatalf("%q: expected 1 segment, got %d", content, len(runs))
		}
		if runs[0].highlighted {
			t.Errorf("%q: expected plain segment", content)
		}
		if runs[0].text != content {
			t.Errorf("%q: expected literal content, got %q", content, runs[0].text)
		}
	}
}

func TestSegmentContent_Empty(t *testing.T) {
	if runs := segmentContent(""); len(runs) != 0 {
		t.Errorf("expected no segments, got %v", runs)
	}
}

func TestLayoutLines_SingleLineMixedRuns(t *testing.T) {
	face := basicfont.Face7x13
	lines := layoutLines(segmentContent("Hello *world*"), face, 1000)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	runs := lines[0].runs
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %v", len(runs), runs)
	}
	if runs[0].text != "Hello " || runs[0].highlighted {
		t.Errorf("run 0: expected plain \"Hello \", got %+v", runs[0])
	}
	if runs[1].text != "world" || !runs[1].highlighted {
		t.Errorf("run 1: expected highlighted \"world\", got %+v", runs[1])
	}
	// Contiguous: the line width is exactly the sum of the run widths.
	sum := 0
	for _, run := range runs {
		sum += font.MeasureString(face, run.text).Ceil()
	}
	if lines[0].width != sum {
		t.Errorf("line width %d != sum of run widths %d", lines[0].width, sum)
	}
}

func TestLayoutLines_OneWordPerLine(t *testing.T) {
	face := basicfont.Face7x13 // 7px fixed advance
	lines := layoutLines(segmentContent("A B C"), face, 10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"A", "B", "C"} {
		if len(lines[i].runs) != 1 || lines[i].runs[0].text != want {
			t.Errorf("line %d: expected single word %q, got %v", i, want, lines[i].runs)
		}
	}
}

func TestLayoutLines_MaxWidthProperty(t *testing.T) {
	face := basicfont.Face7x13
	const maxWidth = 60
	content := "the quick *brown fox* jumps over the extraordinarily lazy dog"
	for _, line := range layoutLines(segmentContent(content), face, maxWidth) {
		var joined strings.Builder
		words := 0
		for _, run := range line.runs {
			joined.WriteString(run.text)
			words += len(strings.Fields(run.text))
		}
		w := font.MeasureString(face, joined.String()).Ceil()
		if w > maxWidth && words > 1 {
			t.Errorf("line %q: width %d exceeds max %d with %d words", joined.String(), w, maxWidth, words)
		}
	}
}

func TestLayoutLines_OverlongWordOverflows(t *testing.T) {
	face := basicfont.Face7x13
	lines := layoutLines(segmentContent("incomprehensibilities"), face, 10)
	if len(lines) != 1 {
		t.Fatalf("expected the overlong word on a single line, got %d lines", len(lines))
	}
	if lines[0].width <= 10 {
		t.Errorf("expected the line to overflow maxWidth, got width %d", lines[0].width)
	}
}

func TestLayoutLines_HardBreaks(t *testing.T) {
	face := basicfont.Face7x13
	lines := layoutLines(segmentContent("first\n\nthird"), face, 0)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (middle one empty), got %d", len(lines))
	}
	if len(lines[1].runs) != 0 {
		t.Errorf("expected empty middle line, got %v", lines[1].runs)
	}
	if lines[0].runs[0].text != "first" || lines[2].runs[0].text != "third" {
		t.Errorf("unexpected line content: %v", lines)
	}
}

func TestLayoutLines_NoMaxWidthNeverWraps(t *testing.T) {
	face := basicfont.Face7x13
	content := strings.Repeat("word ", 500)
	lines := layoutLines(segmentContent(content), face, 0)
	if len(lines) != 1 {
		t.Errorf("expected 1 line without maxWidth, got %d", len(lines))
	}
}

// A highlighted phrase spanning a wrap point keeps its tag on both lines.
func TestLayoutLines_HighlightSurvivesWrap(t *testing.T) {
	face := basicfont.Face7x13
	lines := layoutLines(segmentContent("*alpha beta*"), face, 40)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"alpha", "beta"} {
		runs := lines[i].runs
		if len(runs) != 1 || runs[0].text != want || !runs[0].highlighted {
			t.Errorf("line %d: expected highlighted %q, got %v", i, want, runs)
		}
	}
}

func TestMaterializeContent_SlideNumber(t *testing.T) {
	el := DefaultTextElement()
	el.Role = RoleSlideNumber
	settings := &RenderSettings{SlideNumber: 3, SlideCount: 10}
	if got := materializeContent(&el, settings, ""); got != "3/10" {
		t.Errorf("expected \"3/10\", got %q", got)
	}
}

func TestMaterializeContent_Username(t *testing.T) {
	el := DefaultTextElement()
	el.Role = RoleUsername

	settings := &RenderSettings{Username: "@override"}
	if got := materializeContent(&el, settings, "@default"); got != "@override" {
		t.Errorf("expected override, got %q", got)
	}
	if got := materializeContent(&el, &RenderSettings{}, "@default"); got != "@default" {
		t.Errorf("expected default handle, got %q", got)
	}
}

// Placeholder-looking syntax is literal text, never special-cased.
func TestMaterializeContent_PlainIsLiteral(t *testing.T) {
	el := DefaultTextElement()
	el.Content = "{TITLE} and {TITLE}_COLOR"
	if got := materializeContent(&el, nil, ""); got != el.Content {
		t.Errorf("expected literal content, got %q", got)
	}
}

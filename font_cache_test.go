package carousel

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestStyleName(t *testing.T) {
	tests := []struct {
		weight int
		want   string
	}{
		{300, "Light"},
		{400, "Regular"},
		{500, "Medium"},
		{600, "SemiBold"},
		{700, "Bold"},
		{800, "ExtraBold"},
		{900, "Black"},
		{0, "Regular"},
		{450, "Regular"},
	}
	for _, tt := range tests {
		if got := styleName(tt.weight); got != tt.want {
			t.Errorf("weight %d: expected %q, got %q", tt.weight, tt.want, got)
		}
	}
}

func TestResolve_NeverFails(t *testing.T) {
	fc := NewFontCache(t.TempDir())
	for _, family := range []string{"", "NoSuchFamily", "Inter"} {
		for _, weight := range []int{300, 400, 700, 900, -1} {
			if face := fc.Resolve(family, 32, weight); face == nil {
				t.Errorf("Resolve(%q, 32, %d) returned nil", family, weight)
			}
		}
	}
}

func TestResolveFont_CachedByStyle(t *testing.T) {
	fc := NewFontCache(t.TempDir())
	a := fc.resolveFont("NoSuchFamily", 700)
	b := fc.resolveFont("NoSuchFamily", 700)
	if a == nil {
		t.Fatal("expected the bundled bold fallback, got nil")
	}
	if a != b {
		t.Error("repeated resolution must return the same cached font")
	}
}

func TestResolve_FreshFacePerCall(t *testing.T) {
	// Faces rasterize into internal buffers, so handing the same handle
	// to two renders would let them trample each other's glyph state.
	fc := NewFontCache(t.TempDir())
	a := fc.Resolve("Inter", 24, 400)
	b := fc.Resolve("Inter", 24, 400)
	if a == nil || b == nil {
		t.Fatal("Resolve returned nil")
	}
	if a == b {
		t.Error("each Resolve call must mint its own face handle")
	}
}

func TestFindFile_NestedDirectory(t *testing.T) {
	// System font trees keep families in subdirectories; the index scan
	// must reach files that a flat directory join would miss.
	dir := t.TempDir()
	nested := filepath.Join(dir, "truetype", "custom")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "Custom-Bold.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	fc := NewFontCache(dir)
	got := fc.resolveFont("Custom", 700)
	if got == nil {
		t.Fatal("expected the nested font file to resolve")
	}
	if got == bundledFont(700) {
		t.Error("resolution fell through to the bundled font instead of the file")
	}
}

func TestResolve_Concurrent(t *testing.T) {
	fc := NewFontCache(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, weight := range []int{400, 700} {
				if fc.Resolve("Inter", 30, weight) == nil {
					t.Error("concurrent Resolve returned nil")
				}
			}
		}()
	}
	wg.Wait()
}

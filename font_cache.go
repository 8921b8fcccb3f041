package carousel

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontCache resolves (family, weight) to a parsed font and caches the
// result, so first-time disk I/O happens once per style for the process
// lifetime. Resolution tries, in order: a style-suffixed font file
// ("Inter-Bold.ttf") anywhere under the search directories, a family-only
// file, the bundled Go font family, a platform default sans-serif, and
// finally a built-in bitmap face. It never fails: every resolution
// returns something renderable.
//
// A FontCache is safe for concurrent use; a racing first resolution may
// parse the same file twice, and one result wins the cache slot. The
// font.Face handles minted by Resolve are NOT shareable: a face carries
// mutable rasterizer state, so Resolve returns a fresh face per call and
// each render memoizes its own handles.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	scanned bool
	index   map[string]string         // lowercase filename stem -> path
	fonts   map[string]*opentype.Font // resolved fonts keyed by styled family
	files   map[string]*opentype.Font // parsed fonts keyed by file path
}

// NewFontCache creates a FontCache searching the given directories, then
// a ./fonts directory, then the OS font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	dirs := append([]string{}, extraDirs...)
	dirs = append(dirs, "fonts")
	dirs = append(dirs, systemFontDirs()...)
	return &FontCache{
		dirs:  dirs,
		index: make(map[string]string),
		fonts: make(map[string]*opentype.Font),
		files: make(map[string]*opentype.Font),
	}
}

// weightStyles maps CSS-style numeric weights to font style name suffixes.
var weightStyles = map[int]string{
	300: "Light",
	400: "Regular",
	500: "Medium",
	600: "SemiBold",
	700: "Bold",
	800: "ExtraBold",
	900: "Black",
}

// styleName returns the style suffix for a weight, defaulting to Regular.
func styleName(weight int) string {
	if s, ok := weightStyles[weight]; ok {
		return s
	}
	return "Regular"
}

// styledKey folds a weight into the family name, the axis the cache is
// keyed on: "Inter" at weight 700 resolves as "inter-bold".
func styledKey(family string, weight int) string {
	return strings.ToLower(family + "-" + styleName(weight))
}

// maxFontScanDepth limits recursive directory traversal when indexing
// fonts; system font trees nest families a few levels deep.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// Resolve returns a font.Face for the given family, pixel size, and
// weight. It always returns a usable face; see the FontCache doc for the
// chain. Each call mints a fresh face: faces hold mutable glyph buffers
// and must not be used from multiple goroutines.
func (fc *FontCache) Resolve(family string, size float64, weight int) font.Face {
	f := fc.resolveFont(family, weight)
	if f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72, // 1pt == 1px at 72 DPI; sizes are in pixels
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// resolveFont walks the resolution chain for a styled family, absorbing
// every failure by falling through to the next source, and caches the
// outcome — including "nothing found" — under the styled key.
func (fc *FontCache) resolveFont(family string, weight int) *opentype.Font {
	key := styledKey(family, weight)

	fc.mu.RLock()
	f, ok := fc.fonts[key]
	fc.mu.RUnlock()
	if ok {
		return f
	}

	var chosen *opentype.Font
	for _, f := range []*opentype.Font{
		fc.findFile(family, weight),
		bundledFont(weight),
		platformDefaultFont(),
	} {
		if f != nil {
			chosen = f
			break
		}
	}

	fc.mu.Lock()
	if cached, ok := fc.fonts[key]; ok {
		chosen = cached
	} else {
		fc.fonts[key] = chosen
	}
	fc.mu.Unlock()
	return chosen
}

// findFile looks up a style-suffixed font file in the directory index,
// then a family-only file. Returns nil when nothing loads.
func (fc *FontCache) findFile(family string, weight int) *opentype.Font {
	if family == "" {
		return nil
	}
	fc.ensureScanned()

	style := styleName(weight)
	for _, name := range []string{
		family + "-" + style,
		family + "_" + style,
		family,
	} {
		fc.mu.RLock()
		path, ok := fc.index[strings.ToLower(name)]
		fc.mu.RUnlock()
		if !ok {
			continue
		}
		if f := fc.loadFile(path); f != nil {
			return f
		}
	}
	return nil
}

// ensureScanned builds the filename index on first use.
func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

// scanDir indexes .ttf/.otf files under dir by lowercase filename stem,
// recursing because system font trees keep families in subdirectories.
// Earlier directories win, so caller-supplied dirs shadow system trees.
func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		ext := filepath.Ext(lower)
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		stem := strings.TrimSuffix(lower, ext)
		if _, ok := fc.index[stem]; !ok {
			fc.index[stem] = filepath.Join(dir, entry.Name())
		}
	}
}

// loadFile parses a font file, caching the parsed font by path.
func (fc *FontCache) loadFile(path string) *opentype.Font {
	fc.mu.RLock()
	f, ok := fc.files[path]
	fc.mu.RUnlock()
	if ok {
		return f
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxFontFileSize {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err = opentype.Parse(data)
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	fc.files[path] = f
	fc.mu.Unlock()
	return f
}

// Bundled Go fonts, parsed lazily once per weight class. These are the
// in-process fallback family when no font file matches.
var (
	bundledOnce    sync.Once
	bundledRegular *opentype.Font
	bundledMedium  *opentype.Font
	bundledBold    *opentype.Font
)

func bundledFont(weight int) *opentype.Font {
	bundledOnce.Do(func() {
		bundledRegular, _ = opentype.Parse(goregular.TTF)
		bundledMedium, _ = opentype.Parse(gomedium.TTF)
		bundledBold, _ = opentype.Parse(gobold.TTF)
	})
	switch {
	case weight >= 700:
		return bundledBold
	case weight >= 500:
		return bundledMedium
	default:
		return bundledRegular
	}
}

var (
	platformOnce sync.Once
	platformFont *opentype.Font
)

// platformDefaultFont loads a default sans-serif from a well-known OS path.
func platformDefaultFont() *opentype.Font {
	platformOnce.Do(func() {
		for _, path := range platformFontPaths() {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := opentype.Parse(data)
			if err != nil {
				continue
			}
			platformFont = f
			return
		}
	})
	return platformFont
}

func platformFontPaths() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{
			filepath.Join(windir, "Fonts", "arial.ttf"),
			filepath.Join(windir, "Fonts", "segoeui.ttf"),
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	default: // linux, freebsd, etc.
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		}
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}

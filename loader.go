package carousel

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// httpClient is the shared client for URL image sources. Fetches are
// bounded by a fixed timeout; there is no cancellation model beyond it.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// LoadImage resolves an image source to a decoded bitmap.
//
// A "data:" source is split at the first comma and its payload is
// base64-decoded. An "http"-prefixed source is fetched over the network.
// Anything else is tried as a local file path. Every failure — empty
// source, malformed payload, network error, non-2xx status, undecodable
// bytes — returns nil: the caller renders without this visual.
func LoadImage(source string) image.Image {
	switch {
	case source == "":
		return nil
	case strings.HasPrefix(source, "data:"):
		_, payload, ok := strings.Cut(source, ",")
		if !ok {
			return nil
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil
		}
		return img
	case strings.HasPrefix(source, "http"):
		resp, err := httpClient.Get(source)
		if err != nil {
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil
		}
		return img
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil
		}
		return img
	}
}

// imageCache memoizes LoadImage results within one deck render, so a photo
// shared by every slide is fetched and decoded once. A nil result is cached
// too: a dead source should not be retried per slide.
type imageCache struct {
	mu sync.Mutex
	m  map[string]image.Image
}

func newImageCache() *imageCache {
	return &imageCache{m: make(map[string]image.Image)}
}

func (c *imageCache) load(source string) image.Image {
	if source == "" {
		return nil
	}
	c.mu.Lock()
	img, ok := c.m[source]
	c.mu.Unlock()
	if ok {
		return img
	}

	img = LoadImage(source)

	c.mu.Lock()
	c.m[source] = img
	c.mu.Unlock()
	return img
}

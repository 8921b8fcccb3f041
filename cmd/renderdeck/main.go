// Command renderdeck renders a JSON deck description to one image per slide.
//
// Usage:
//
//	renderdeck -in deck.json -out ./output [-fonts ./fonts] [-format png|jpeg] [-username @handle]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slidekit/carousel"
)

func main() {
	in := flag.String("in", "deck.json", "deck description JSON file")
	out := flag.String("out", "output", "output directory")
	fonts := flag.String("fonts", "", "extra font directory")
	format := flag.String("format", "png", "output format: png or jpeg")
	username := flag.String("username", "", "default username for branded slides")
	workers := flag.Int("workers", 4, "parallel slide renders")
	flag.Parse()

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read deck: %v\n", err)
		os.Exit(1)
	}

	var deck carousel.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		fmt.Fprintf(os.Stderr, "parse deck: %v\n", err)
		os.Exit(1)
	}
	if err := deck.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	opts := carousel.DefaultRenderOptions()
	opts.DefaultUsername = *username
	opts.Workers = *workers
	if *fonts != "" {
		opts.FontDirs = []string{*fonts}
	}
	ext := "png"
	if *format == "jpeg" || *format == "jpg" {
		opts.Format = carousel.ImageFormatJPEG
		ext = "jpg"
	}

	if err := os.MkdirAll(*out, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	pattern := filepath.Join(*out, "slide%02d."+ext)
	if err := carousel.SaveDeckImages(&deck, pattern, opts); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d slides to %s\n", len(deck.Slides), *out)
}

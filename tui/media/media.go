// Package media renders data-URI images as ANSI half-block thumbnails.
package media

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/CrestNiraj12/terminalwall/infra/imageio"
	"github.com/CrestNiraj12/terminalwall/tui/common"
)

const maxCacheEntries = 256

// Decode parses a data URI into an image.
func Decode(uri string) (image.Image, error) {
	_, data, err := imageio.DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Render draws img into w columns by h rows. Each cell carries two vertical
// pixels: the upper half as foreground of "▀" and the lower half as background.
func Render(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 2 {
		w = 2
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := flatten(dst.NRGBAAt(x, y*2))
			bot := flatten(dst.NRGBAAt(x, y*2+1))
			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// flatten composites a pixel over the terminal background.
func flatten(c color.NRGBA) color.NRGBA {
	if c.A == 0xff {
		return c
	}
	const bg = 0x1e
	a := uint32(c.A)
	mix := func(v uint8) uint8 {
		return uint8((uint32(v)*a + bg*(0xff-a)) / 0xff)
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xff}
}

// Placeholder is drawn where an image cannot be decoded.
func Placeholder(w, h int) string {
	if w < 2 {
		w = 2
	}
	if h < 1 {
		h = 1
	}
	return lipgloss.NewStyle().
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(common.ColorMuted).
		Background(common.ColorBorder).
		Render("img")
}

// Cache memoizes rendered thumbnails keyed by image content and size.
// The zero value is not usable; call NewCache.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]string
}

// NewCache returns an empty thumbnail cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]string)}
}

// Thumbnail renders uri at w x h cells, falling back to a placeholder when
// the data cannot be decoded.
func (c *Cache) Thumbnail(uri string, w, h int) string {
	key := cacheKey(uri, w, h)
	c.mu.Lock()
	if s, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	var s string
	if img, err := Decode(uri); err == nil {
		s = Render(img, w, h)
	} else {
		s = Placeholder(w, h)
	}

	c.mu.Lock()
	if len(c.entries) >= maxCacheEntries {
		c.entries = make(map[uint64]string)
	}
	c.entries[key] = s
	c.mu.Unlock()
	return s
}

// Len reports the number of cached renders.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(uri string, w, h int) uint64 {
	f := fnv.New64a()
	fmt.Fprintf(f, "%d|%d|", w, h)
	f.Write([]byte(uri))
	return f.Sum64()
}

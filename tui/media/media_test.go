package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalwall/infra/imageio"
)

func pngURI(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return imageio.EncodeDataURI("image/png", buf.Bytes())
}

func TestRender_Dimensions(t *testing.T) {
	img, err := Decode(pngURI(t, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := Render(img, 6, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if w := lipgloss.Width(l); w != 6 {
			t.Fatalf("expected 6 columns, got %d", w)
		}
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Fatalf("expected red foreground in render")
	}
}

func TestCache_FallsBackToPlaceholder(t *testing.T) {
	c := NewCache()
	out := c.Thumbnail("data:image/png;base64,bm90IGFuIGltYWdl", 4, 2)
	if !strings.Contains(out, "img") {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestCache_Memoizes(t *testing.T) {
	c := NewCache()
	uri := pngURI(t, color.White)
	first := c.Thumbnail(uri, 4, 2)
	second := c.Thumbnail(uri, 4, 2)
	if first != second {
		t.Fatalf("expected identical renders")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cache entry, got %d", c.Len())
	}
	c.Thumbnail(uri, 8, 4)
	if c.Len() != 2 {
		t.Fatalf("size must be part of the key")
	}
}

package imageio

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrestNiraj12/terminalwall/domain"
)

func writePNG(t *testing.T, dir, name string, c color.Color) (string, []byte) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path, buf.Bytes()
}

func TestDataURI_RoundTrip(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte{1, 2, 3})
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected uri: %q", uri)
	}
	mt, data, err := DecodeDataURI(uri)
	if err != nil || mt != "image/png" || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("round trip failed: %q %v %v", mt, data, err)
	}
	for _, bad := range []string{"/profile.jpg", "data:image/png,raw", "data:image/png;base64", "data:image/png;base64,***"} {
		if _, _, err := DecodeDataURI(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIngest_PreservesFileOrder(t *testing.T) {
	dir := t.TempDir()
	f1, b1 := writePNG(t, dir, "f1.png", color.RGBA{R: 255, A: 255})
	f2, b2 := writePNG(t, dir, "f2.png", color.RGBA{B: 255, A: 255})

	batch, err := NewIngestor().Ingest(context.Background(), []string{f1, f2})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(batch.Skipped) != 0 {
		t.Fatalf("unexpected skipped files: %#v", batch.Skipped)
	}
	want := []string{EncodeDataURI("image/png", b1), EncodeDataURI("image/png", b2)}
	if len(batch.Images) != 2 || batch.Images[0] != want[0] || batch.Images[1] != want[1] {
		t.Fatalf("images out of order or wrong")
	}
}

func TestIngest_EmptyImageBecomesEmptyDataURI(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "blank.png")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	batch, err := NewIngestor().Ingest(context.Background(), []string{empty})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(batch.Skipped) != 0 || len(batch.Images) != 1 {
		t.Fatalf("expected one image, got %#v", batch)
	}
	if batch.Images[0] != "data:image/png;base64," {
		t.Fatalf("unexpected data uri: %q", batch.Images[0])
	}
}

func TestIngest_DropsUnreadableAndNonImages(t *testing.T) {
	dir := t.TempDir()
	ok, _ := writePNG(t, dir, "ok.png", color.White)
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	missing := filepath.Join(dir, "missing.png")

	batch, err := NewIngestor().Ingest(context.Background(), []string{missing, txt, ok})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(batch.Images) != 1 {
		t.Fatalf("expected only the readable image, got %d", len(batch.Images))
	}
	if len(batch.Skipped) != 2 || batch.Skipped[0].Path != missing || batch.Skipped[1].Path != txt {
		t.Fatalf("unexpected skipped list: %#v", batch.Skipped)
	}
	if !errors.Is(batch.Skipped[1].Err, domain.ErrNotImage) {
		t.Fatalf("expected ErrNotImage for text file, got %v", batch.Skipped[1].Err)
	}
}

func TestIngest_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ok, _ := writePNG(t, dir, "ok.png", color.White)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewIngestor().Ingest(ctx, []string{ok}); err == nil {
		t.Fatalf("expected cancelled batch to fail")
	}
}

func TestParseDroppedPaths(t *testing.T) {
	dir := t.TempDir()
	plain, _ := writePNG(t, dir, "a.png", color.Black)
	spaced, _ := writePNG(t, dir, "my photo.png", color.Black)
	txt := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o600); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single path", in: plain, want: []string{plain}},
		{name: "quoted and plain", in: "'" + spaced + "' " + plain + "\n", want: []string{spaced, plain}},
		{name: "backslash escaped", in: strings.ReplaceAll(spaced, " ", `\ `), want: []string{spaced}},
		{name: "file uri", in: "file://" + plain, want: []string{plain}},
		{name: "non image filtered", in: plain + " " + txt, want: []string{plain}},
		{name: "prose", in: "hello world", want: nil},
		{name: "prose mentioning a path", in: "see " + plain, want: nil},
		{name: "empty", in: "   ", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDroppedPaths(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %#v want %#v", got, tc.want)
				}
			}
		})
	}
}

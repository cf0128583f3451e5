package imageio

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/terminalwall/domain"
)

const defaultWorkers = 4

// SkippedFile records a file that did not make it into a batch.
type SkippedFile struct {
	Path string
	Err  error
}

// Batch is the joined result of converting a set of files.
type Batch struct {
	Images  []string // Data URIs in file order
	Skipped []SkippedFile
}

// Ingestor converts files to data URIs.
type Ingestor struct {
	readFile func(string) ([]byte, error)
	workers  int
}

// NewIngestor creates an Ingestor reading from the local filesystem.
func NewIngestor() *Ingestor {
	return &Ingestor{readFile: os.ReadFile, workers: defaultWorkers}
}

// Ingest converts every path concurrently and returns once all of them are
// done. Files that are not declared images or cannot be read are skipped;
// the rest keep their input order. A cancelled context abandons the batch.
func (in *Ingestor) Ingest(ctx context.Context, paths []string) (Batch, error) {
	uris := make([]string, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			uris[i], errs[i] = in.convert(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, fmt.Errorf("ingesting images: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Batch{}, fmt.Errorf("ingesting images: %w", err)
	}

	var b Batch
	for i, p := range paths {
		if errs[i] != nil {
			b.Skipped = append(b.Skipped, SkippedFile{Path: p, Err: errs[i]})
			continue
		}
		b.Images = append(b.Images, uris[i])
	}
	return b, nil
}

func (in *Ingestor) convert(path string) (string, error) {
	declared := DeclaredType(path)
	if !strings.HasPrefix(declared, "image/") {
		return "", fmt.Errorf("%s: %w", path, domain.ErrNotImage)
	}
	data, err := in.readFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	mediaType := declared
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		mediaType = sniffed
	}
	return EncodeDataURI(mediaType, data), nil
}

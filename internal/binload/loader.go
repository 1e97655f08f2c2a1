package binload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"trt-calculator/internal/trt"
)

// DefaultWorkers bounds how many export files are decoded at once.
const DefaultWorkers = 4

// Decode reads one JSON bin export.
func Decode(r io.Reader, defaultRate int) ([]trt.TimelineRecord, error) {
	var b Bin
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return b.Records(defaultRate)
}

// LoadFile reads the bin export at path.
func LoadFile(path string, defaultRate int) ([]trt.TimelineRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Decode(f, defaultRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// LoadDir reads every *.json export in dir, at most workers at a time.
// Records come back grouped by file in file name order, each file's
// timelines in the order they were exported.
func LoadDir(ctx context.Context, dir string, defaultRate, workers int) ([]trt.TimelineRecord, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([][]trt.TimelineRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := LoadFile(path, defaultRate)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []trt.TimelineRecord
	for _, recs := range results {
		out = append(out, recs...)
	}
	return out, nil
}

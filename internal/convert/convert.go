// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs XML documents through a Converter and writes one
// output file per document, reporting per-document status and a batch
// summary.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// Converter transforms one XML document read from r into serialized output
// written to w. The XML backend is XMLConverter; tests substitute fakes.
type Converter interface {
	Convert(r io.Reader, w io.Writer) error
}

// Tracker remembers earlier conversions so unchanged documents can be
// skipped. *manifest.Store implements it.
type Tracker interface {
	Unchanged(ctx context.Context, doc types.Document, modTime time.Time) (bool, error)
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Options controls skipping, failure handling and parallelism.
type Options struct {
	// Force converts documents even when their output exists or is unchanged.
	Force bool
	// FailFast stops the batch after the first failed document.
	FailFast bool
	// Jobs is the maximum number of concurrent conversions (minimum 1).
	Jobs int
	// Tracker, when set, replaces the output-exists check with a manifest
	// lookup and receives a record for every attempt.
	Tracker Tracker
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDocument converts a single document, writing the output only when
// conversion succeeds. The returned error explains a failed status.
func ConvertDocument(ctx context.Context, c Converter, doc types.Document, opts Options, w io.Writer) (types.ConversionStatus, error) {
	info, err := os.Stat(doc.SourcePath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed, err
	}

	if !opts.Force {
		if skip, reason := shouldSkip(ctx, doc, info.ModTime(), opts.Tracker, w); skip {
			fmt.Fprintf(w, "skipped: %s (%s)\n", doc.ID, reason)
			return types.ConversionSkipped, nil
		}
	}

	err = convertFile(c, doc)
	record(ctx, opts.Tracker, doc, info.ModTime(), err, w)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed, err
	}

	fmt.Fprintf(w, "converted: %s\n", doc.ID)
	return types.ConversionDone, nil
}

func shouldSkip(ctx context.Context, doc types.Document, modTime time.Time, tracker Tracker, w io.Writer) (bool, string) {
	if tracker != nil {
		unchanged, err := tracker.Unchanged(ctx, doc, modTime)
		if err != nil {
			fmt.Fprintf(w, "warning: manifest lookup failed for %s: %v\n", doc.ID, err)
			return false, ""
		}
		return unchanged, "unchanged"
	}
	if _, err := os.Stat(doc.OutputPath); err == nil {
		return true, "already exists"
	}
	return false, ""
}

func convertFile(c Converter, doc types.Document) error {
	f, err := os.Open(doc.SourcePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.Convert(f, &out); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(doc.OutputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(doc.OutputPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", doc.OutputPath, err)
	}
	return nil
}

func record(ctx context.Context, tracker Tracker, doc types.Document, modTime time.Time, convErr error, w io.Writer) {
	if tracker == nil {
		return
	}
	rec := types.ConversionRecord{
		Document:      doc,
		SourceModTime: modTime,
		Status:        types.ConversionDone,
		ConvertedAt:   time.Now().UTC(),
	}
	if convErr != nil {
		rec.Status = types.ConversionFailed
		rec.Error = convErr.Error()
	}
	if err := tracker.Record(ctx, rec); err != nil {
		fmt.Fprintf(w, "warning: manifest not updated for %s: %v\n", doc.ID, err)
	}
}

// ConvertBatch converts docs with up to opts.Jobs documents in flight,
// printing per-document status to w and returning a summary. Failed
// documents are counted and the batch continues unless opts.FailFast is set,
// in which case the first failure is returned once in-flight documents
// finish.
func ConvertBatch(ctx context.Context, c Converter, docs []types.Document, opts Options, w io.Writer) (BatchResult, error) {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	out := &syncWriter{w: w}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var (
		mu     sync.Mutex
		result BatchResult
	)
	for _, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		doc := doc
		g.Go(func() error {
			// Go blocks for a free slot, so the batch may have been cancelled
			// while this document was waiting.
			if gctx.Err() != nil {
				return nil
			}
			status, err := ConvertDocument(gctx, c, doc, opts, out)

			mu.Lock()
			switch status {
			case types.ConversionDone:
				result.Converted++
			case types.ConversionSkipped:
				result.Skipped++
			case types.ConversionFailed:
				result.Failed++
			}
			mu.Unlock()

			if err != nil && opts.FailFast {
				return fmt.Errorf("converting %s: %w", doc.ID, err)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, err
}

// Documents builds Document records for XML paths. Each output path is the
// input file name with its extension replaced by format's, inside outputDir.
func Documents(paths []string, outputDir string, format types.OutputFormat) []types.Document {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		id := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		docs[i] = types.Document{
			ID:         id,
			SourcePath: p,
			OutputPath: filepath.Join(outputDir, id+format.Extension()),
		}
	}
	return docs
}

// Discover lists the regular *.xml files directly inside inputDir, in name
// order. Subdirectories are not traversed.
func Discover(inputDir, outputDir string, format types.OutputFormat) ([]types.Document, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", inputDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		paths = append(paths, filepath.Join(inputDir, entry.Name()))
	}
	return Documents(paths, outputDir, format), nil
}

// ConvertDir discovers the XML files in cfg.InputDir and converts them into
// cfg.OutputDir.
func ConvertDir(ctx context.Context, c Converter, cfg types.ConversionConfig, opts Options, w io.Writer) (BatchResult, error) {
	docs, err := Discover(cfg.InputDir, cfg.OutputDir, cfg.Format)
	if err != nil {
		return BatchResult{}, err
	}
	if len(docs) == 0 {
		fmt.Fprintf(w, "no XML files found in %s\n", cfg.InputDir)
		return BatchResult{}, nil
	}
	return ConvertBatch(ctx, c, docs, opts, w)
}

// syncWriter serializes writes from concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

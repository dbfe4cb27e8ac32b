package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   int
	Err        error
	Duration   time.Duration
}

// convertBatch converts files with at most pool.Size() conversions in
// flight. Each file checks a converter out of the pool for its own
// conversion. Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, logger zerolog.Logger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(1, min(pool.Size(), len(files))))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			conv, err := pool.Acquire(ctx)
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(ctx, conv, f, params, logger)
			return nil
		})
	}

	// Failures are recorded per file; the group never returns an error.
	_ = g.Wait()
	return results
}

// convertFile processes a single file. Warnings are logged with the file
// name attached.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams, logger zerolog.Logger) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return result
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return result
	}

	title := params.title
	if title == "" {
		title = titleFromPath(f.InputPath)
	}

	fileLogger := logger.With().Str("file", f.InputPath).Logger()
	res, err := conv.Convert(fileLogger.WithContext(ctx), params.input(string(content), sourceDir, title))
	if err != nil {
		result.Err = err
		return result
	}
	result.Warnings = len(res.Warnings)

	data := res.HTML
	if params.mode == modePDF {
		data = res.PDF
	}
	if err := writeOutput(f.OutputPath, data); err != nil {
		result.Err = err
	}
	return result
}

// titleFromPath derives a document title from a file name:
// "getting-started.terse" becomes "getting started".
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes per-file lines and, for batches, a summary.
func printResults(results []ConversionResult, quiet, verbose bool, stdout, stderr io.Writer) {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		var suffix string
		if r.Warnings > 0 {
			suffix = fmt.Sprintf(" (%d warnings)", r.Warnings)
		}
		if verbose {
			fmt.Fprintf(stdout, "%s -> %s (%v)%s\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), suffix)
		} else {
			fmt.Fprintf(stdout, "Created %s%s\n", r.OutputPath, suffix)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
}

// batchError returns nil when every file converted. Otherwise it wraps the
// first failure so callers can map it to an exit code.
func batchError(results []ConversionResult) error {
	summary := countResults(results)
	if summary.Failed == 0 {
		return nil
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%w (%d of %d files): %w", ErrConversionFailed, summary.Failed, len(results), r.Err)
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	encore "github.com/alnah/go-encore"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxTemplateSize limits a single template file (4MB).
const maxTemplateSize = 4 << 20

// PageRenderer is the interface for the page rendering service.
type PageRenderer interface {
	Render(ctx context.Context, page encore.Page) (*encore.RenderResult, error)
}

// Compile-time interface implementation check.
var _ PageRenderer = (*encore.Renderer)(nil)

// RenderResult holds the outcome of a single template render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderBatch renders templates concurrently with up to workers goroutines.
// The renderer is shared: encore.Renderer is safe for concurrent use.
func renderBatch(ctx context.Context, renderer PageRenderer, files []TemplateToRender, params *renderParams, workers int, env *Environment) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, renderer, files[idx], params, env.Stdout)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single template and returns the result.
// An empty OutputPath writes the page to stdout.
func renderFile(ctx context.Context, renderer PageRenderer, f TemplateToRender, params *renderParams, stdout io.Writer) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := readTemplate(f.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	page, err := renderer.Render(ctx, encore.Page{
		Name:          filepath.Base(f.InputPath),
		Template:      content,
		Markdown:      params.markdown,
		Entries:       params.entries,
		RewriteAssets: params.rewriteAssets,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if f.OutputPath == "" {
		if _, err := io.WriteString(stdout, page.HTML); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- rendered pages are meant to be readable
	if err := os.WriteFile(f.OutputPath, []byte(page.HTML), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// readTemplate reads a template file, rejecting oversized input.
func readTemplate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}
	if info.Size() > maxTemplateSize {
		return "", fmt.Errorf("%w: %s is %d bytes (max %d)", ErrReadTemplate, path, info.Size(), maxTemplateSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}
	return string(data), nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
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

// printResults outputs render results and returns the number of failures.
// Pages written to stdout are not reported.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet || r.OutputPath == "" {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stderr, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

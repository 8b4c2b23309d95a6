package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/config"
	"github.com/alnah/go-encore/internal/fileutil"
	"github.com/alnah/go-encore/internal/hints"
)

// maxMarkdownSize limits the markdown file passed with --markdown (8MB).
const maxMarkdownSize = 8 << 20

// Sentinel errors for render operations.
var (
	ErrReadTemplate = errors.New("failed to read template file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	markdown      string
	entries       []string
	rewriteAssets bool
}

// runRender orchestrates the render process.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: template file or directory", ErrNoInput)
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: render takes one template or directory, got %d", ErrUsage, len(positionalArgs))
	}
	inputPath := positionalArgs[0]

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)

	if err := validateWorkers(cfg.Render.Workers); err != nil {
		return err
	}

	files, err := discoverTemplates(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering templates: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no templates found in %s", ErrNoInput, inputPath)
	}

	params := &renderParams{
		entries:       cfg.Render.Entries,
		rewriteAssets: cfg.Render.RewriteAssets,
	}
	if cfg.Render.Markdown != "" {
		data, err := fileutil.ReadFileLimited(fileutil.OSOpener, cfg.Render.Markdown, maxMarkdownSize)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		params.markdown = string(data)
	}

	resolver := newResolver(cfg, flags.common.verbose, env)
	if err := preflightRender(resolver, params, env); err != nil {
		return err
	}

	workers := resolveWorkers(cfg.Render.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d template(s) with %d worker(s)\n", len(files), workers)
	}

	results := renderBatch(ctx, encore.NewRenderer(resolver), files, params, workers, env)
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d of %d templates failed: %w", failed, len(results), firstError(results))
	}
	return nil
}

// mergeRenderFlags applies render flags over cfg (CLI wins).
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if len(flags.entries) > 0 {
		cfg.Render.Entries = flags.entries
	}
	if flags.markdown != "" {
		cfg.Render.Markdown = flags.markdown
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.rewriteAssets {
		cfg.Render.RewriteAssets = true
	}
}

// preflightRender loads the documents the render options depend on, so a
// missing build fails once instead of silently rendering empty tags.
// Unknown entries only warn: they contribute nothing, like in templates.
func preflightRender(resolver *encore.Resolver, params *renderParams, env *Environment) error {
	if len(params.entries) > 0 {
		doc, err := resolver.Entrypoints()
		if err != nil {
			return documentError(err, resolver.EntrypointsFile(), envEntrypoints)
		}
		available := slices.Sorted(maps.Keys(doc.Entrypoints))
		for _, name := range params.entries {
			if _, ok := doc.Entrypoints[name]; !ok {
				fmt.Fprintf(env.Stderr, "warning: unknown entrypoint %q%s\n", name, hints.ForUnknownEntry(available))
			}
		}
	}

	if params.rewriteAssets {
		if _, err := resolver.Manifest(); err != nil {
			return documentError(err, resolver.ManifestFile(), envManifest)
		}
	}

	return nil
}

// firstError returns the first failure in results, or nil.
func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

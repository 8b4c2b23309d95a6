package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/fileutil"
	"github.com/alnah/go-encore/internal/hints"
)

// maxAssetSize limits a single built file read during verification (256MB).
const maxAssetSize = 256 << 20

// Sentinel errors for check operations.
var (
	ErrUnknownEntry     = errors.New("unknown entrypoint")
	ErrCheckFailed      = errors.New("check failed")
	ErrOutsidePublicDir = errors.New("path escapes the public directory")
)

// fileProblem describes one referenced file that failed verification.
type fileProblem struct {
	File string
	Err  error
}

// runCheck loads both documents, reports their contents and, with a public
// directory, verifies every referenced file.
func runCheck(ctx context.Context, positionalArgs []string, flags *checkFlags, env *Environment) error {
	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.publicDir != "" {
		cfg.Check.PublicDir = flags.publicDir
	}

	resolver := newResolver(cfg, flags.common.verbose, env)

	entrypoints, err := resolver.Entrypoints()
	if err != nil {
		return documentError(err, resolver.EntrypointsFile(), envEntrypoints)
	}
	manifest, err := resolver.Manifest()
	if err != nil {
		return documentError(err, resolver.ManifestFile(), envManifest)
	}

	available := slices.Sorted(maps.Keys(entrypoints.Entrypoints))
	names := positionalArgs
	if len(names) == 0 {
		names = available
	}
	for _, name := range names {
		if _, ok := entrypoints.Entrypoints[name]; !ok {
			return fmt.Errorf("%w: %q%s", ErrUnknownEntry, name, hints.ForUnknownEntry(available))
		}
	}

	if !flags.common.quiet {
		printDocumentSummary(env, resolver, entrypoints, manifest, names)
	}

	if cfg.Check.PublicDir == "" {
		return nil
	}

	files := referencedFiles(resolver, manifest, names)
	problems, err := verifyFiles(ctx, cfg.Check.PublicDir, entrypoints, files)
	if err != nil {
		return err
	}

	for _, p := range problems {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", p.File, p.Err)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d of %d files%s", ErrCheckFailed, len(problems), len(files), problemHint(problems))
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "OK: %d files verified in %s\n", len(files), cfg.Check.PublicDir)
	}
	return nil
}

// printDocumentSummary prints entrypoint and asset counts.
func printDocumentSummary(env *Environment, resolver *encore.Resolver, entrypoints *encore.EntrypointsDocument, manifest encore.ManifestDocument, names []string) {
	fmt.Fprintf(env.Stdout, "%s: %d entrypoints, %d integrity hashes\n",
		resolver.EntrypointsFile(), len(entrypoints.Entrypoints), len(entrypoints.Integrity))
	for _, name := range names {
		entry := entrypoints.Entrypoints[name]
		fmt.Fprintf(env.Stdout, "  %s: %d js, %d css\n", name, len(entry.JS), len(entry.CSS))
	}
	fmt.Fprintf(env.Stdout, "%s: %d assets\n", resolver.ManifestFile(), len(manifest))
}

// referencedFiles returns the sorted, deduplicated local files of the named
// entrypoints and the manifest. URLs are skipped.
func referencedFiles(resolver *encore.Resolver, manifest encore.ManifestDocument, names []string) []string {
	var files []string
	files = append(files, resolver.EntryFiles(encore.FileKindJS, names...)...)
	files = append(files, resolver.EntryFiles(encore.FileKindCSS, names...)...)
	for _, physical := range manifest {
		files = append(files, physical)
	}

	files = slices.DeleteFunc(files, func(f string) bool {
		return f == "" || fileutil.IsURL(f) || strings.HasPrefix(f, "data:")
	})
	slices.Sort(files)
	return slices.Compact(files)
}

// verifyFiles checks that each file exists under publicDir and matches its
// integrity hash, when entrypoints.json records one. Paths that would
// resolve outside publicDir are reported, not read.
func verifyFiles(ctx context.Context, publicDir string, entrypoints *encore.EntrypointsDocument, files []string) ([]fileProblem, error) {
	var problems []fileProblem
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := filepath.FromSlash(strings.TrimPrefix(file, "/"))
		if !filepath.IsLocal(rel) {
			problems = append(problems, fileProblem{File: file, Err: ErrOutsidePublicDir})
			continue
		}

		data, err := fileutil.ReadFileLimited(fileutil.OSOpener, filepath.Join(publicDir, rel), maxAssetSize)
		if err != nil {
			problems = append(problems, fileProblem{File: file, Err: err})
			continue
		}

		if integrity, ok := entrypoints.IntegrityFor(file); ok {
			if err := encore.VerifyIntegrity(integrity, data); err != nil {
				problems = append(problems, fileProblem{File: file, Err: err})
			}
		}
	}
	return problems, nil
}

// problemHint picks the hint matching the first kind of problem found.
func problemHint(problems []fileProblem) string {
	for _, p := range problems {
		if errors.Is(p.Err, encore.ErrIntegrityMismatch) {
			return hints.ForIntegrityMismatch()
		}
	}
	return hints.ForPublicDir()
}

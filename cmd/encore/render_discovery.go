package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-encore/internal/config"
)

// Sentinel errors for template discovery.
var (
	ErrInvalidExtension   = errors.New("template must have .html or .tmpl extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputRequired     = errors.New("output directory required when rendering a directory")
)

// templateExtensions are the file extensions render picks up.
var templateExtensions = map[string]bool{
	".html": true,
	".tmpl": true,
}

// TemplateToRender represents a single template to process.
// An empty OutputPath means stdout.
type TemplateToRender struct {
	InputPath  string
	OutputPath string
}

// discoverTemplates finds all templates to render under inputPath.
func discoverTemplates(inputPath, output string) ([]TemplateToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateTemplateExtension(inputPath); err != nil {
			return nil, err
		}
		return []TemplateToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	if output == "" {
		return nil, fmt.Errorf("%w: %s", ErrOutputRequired, inputPath)
	}

	var files []TemplateToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			// Skip the output directory when it is nested in the input.
			if path != inputPath && sameDir(path, output) {
				return filepath.SkipDir
			}
			return nil
		}
		if !templateExtensions[filepath.Ext(path)] {
			return nil
		}
		files = append(files, TemplateToRender{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, output, inputPath),
		})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a template.
// Templates keep their directory layout under output; .tmpl becomes .html.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	if output == "" {
		return ""
	}

	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext) + ".html"

	if baseInputDir == "" {
		if filepath.Ext(output) == ".html" {
			return output
		}
		return filepath.Join(output, base)
	}

	relPath, err := filepath.Rel(baseInputDir, inputPath)
	if err == nil {
		return filepath.Join(output, filepath.Dir(relPath), base)
	}
	return filepath.Join(output, base)
}

// validateTemplateExtension checks that the file is an .html or .tmpl template.
func validateTemplateExtension(path string) error {
	ext := filepath.Ext(path)
	if !templateExtensions[ext] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers determines the number of render workers.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	available := runtime.GOMAXPROCS(0)
	if available < 1 {
		return 1
	}
	if available > config.MaxWorkers {
		return config.MaxWorkers
	}
	return available
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

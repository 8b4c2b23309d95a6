package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config      string
	entrypoints string
	manifest    string
	quiet       bool
	verbose     bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common        commonFlags
	output        string
	entries       []string
	markdown      string
	workers       int
	rewriteAssets bool
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common    commonFlags
	publicDir string
}

// integrityFlags holds all flags for the integrity command.
type integrityFlags struct {
	common    commonFlags
	algorithm string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.entrypoints, "entrypoints", "", "path to entrypoints.json")
	fs.StringVar(&f.manifest, "manifest", "", "path to manifest.json")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show details and document load failures")
}

// newFlagSet creates a FlagSet that reports errors to the caller only.
// Usage is printed by run, so pflag's own output is discarded.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseFlagSet parses args, wrapping failures in ErrUsage.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := newFlagSet("render")
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringSliceVarP(&f.entries, "entry", "e", nil, "entrypoints injected into every page (repeatable, comma-separated)")
	fs.StringVarP(&f.markdown, "markdown", "m", "", "markdown file exposed to templates as .Content")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.rewriteAssets, "rewrite-assets", false, "rewrite manifest keys in img/link/script/source")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := newFlagSet("check")
	f := &checkFlags{}

	fs.StringVarP(&f.publicDir, "public-dir", "p", "", "web root; verify referenced files exist and match integrity")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseIntegrityFlags parses integrity command flags and returns positional args.
func parseIntegrityFlags(args []string) (*integrityFlags, []string, error) {
	fs := newFlagSet("integrity")
	f := &integrityFlags{}

	fs.StringVarP(&f.algorithm, "algorithm", "a", "", "hash algorithm: sha256, sha384, sha512 (default sha384)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

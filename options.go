package encore

import (
	"io/fs"
	"log/slog"

	"github.com/alnah/go-encore/internal/fileutil"
)

// Default document locations, relative to the working directory.
const (
	DefaultEntrypointsFile = "entrypoints.json"
	DefaultManifestFile    = "manifest.json"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithEntrypointsFile sets the path of entrypoints.json.
func WithEntrypointsFile(path string) Option {
	return func(r *Resolver) {
		r.entrypointsFile = path
	}
}

// WithManifestFile sets the path of manifest.json.
func WithManifestFile(path string) Option {
	return func(r *Resolver) {
		r.manifestFile = path
	}
}

// WithFS reads documents from fsys instead of the operating system.
// Document paths are resolved against the root of fsys; a leading slash
// is ignored.
func WithFS(fsys fs.FS) Option {
	return func(r *Resolver) {
		r.open = fileutil.FSOpener(fsys)
	}
}

// WithLogger sets the logger that receives debug records when a document
// cannot be loaded. A nil logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

package encore

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alnah/go-encore/internal/fileutil"
	"github.com/alnah/go-encore/internal/lazy"
)

// Resolver turns Encore build documents into HTML tags and asset paths.
//
// Each document is read on first use and cached for the lifetime of the
// Resolver; later changes to the files are not observed. A document that
// fails to load is not cached, so the next call retries the read.
// A Resolver is safe for concurrent use.
type Resolver struct {
	entrypointsFile string
	manifestFile    string
	open            fileutil.Opener
	logger          *slog.Logger

	entrypoints lazy.Cell[*EntrypointsDocument]
	manifest    lazy.Cell[ManifestDocument]
}

// New creates a Resolver reading entrypoints.json and manifest.json from the
// working directory. Use options to change the paths or the filesystem.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		entrypointsFile: DefaultEntrypointsFile,
		manifestFile:    DefaultManifestFile,
		open:            fileutil.OSOpener,
		logger:          slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// EntrypointsFile returns the configured entrypoints.json path.
func (r *Resolver) EntrypointsFile() string {
	return r.entrypointsFile
}

// ManifestFile returns the configured manifest.json path.
func (r *Resolver) ManifestFile() string {
	return r.manifestFile
}

// LinkTags renders a stylesheet <link> tag for every CSS file of the named
// entrypoints. The first argument is the host's render context and is ignored.
// Unknown entrypoints contribute nothing; an unavailable document renders
// nothing.
func (r *Resolver) LinkTags(_ any, entryNames ...string) SafeString {
	return r.renderTags(FileKindCSS, entryNames)
}

// ScriptTags renders a <script> tag for every JS file of the named
// entrypoints. See LinkTags for the handling of missing data.
func (r *Resolver) ScriptTags(_ any, entryNames ...string) SafeString {
	return r.renderTags(FileKindJS, entryNames)
}

// Asset returns the physical path the manifest records for the first
// argument. Extra arguments are ignored. The lookup is an exact key match;
// an unknown path or an unavailable manifest renders nothing.
func (r *Resolver) Asset(_ any, assetPath ...string) SafeString {
	if len(assetPath) == 0 {
		return SafeString{}
	}

	manifest, err := r.Manifest()
	if err != nil {
		return SafeString{}
	}

	return NewSafeString(manifest[assetPath[0]])
}

// EntryFiles returns the distinct files of kind listed by the named
// entrypoints, sorted by byte-wise string comparison.
// Returns nil if no names are given or the document is unavailable.
func (r *Resolver) EntryFiles(kind FileKind, entryNames ...string) []string {
	if len(entryNames) == 0 {
		return nil
	}

	doc, err := r.Entrypoints()
	if err != nil {
		return nil
	}

	return collectFiles(doc, kind, entryNames)
}

// Entrypoints returns the cached entrypoints document, loading it if needed.
// Returns an error wrapping ErrDocumentUnavailable if it cannot be loaded.
func (r *Resolver) Entrypoints() (*EntrypointsDocument, error) {
	return r.entrypoints.Get(func() (*EntrypointsDocument, error) {
		data, err := r.readDocument(r.entrypointsFile)
		if err != nil {
			return nil, err
		}
		doc, err := ParseEntrypoints(data)
		if err != nil {
			r.logUnavailable(r.entrypointsFile, err)
			return nil, fmt.Errorf("%s: %w", r.entrypointsFile, err)
		}
		return doc, nil
	})
}

// Manifest returns the cached manifest document, loading it if needed.
// Returns an error wrapping ErrDocumentUnavailable if it cannot be loaded.
func (r *Resolver) Manifest() (ManifestDocument, error) {
	return r.manifest.Get(func() (ManifestDocument, error) {
		data, err := r.readDocument(r.manifestFile)
		if err != nil {
			return nil, err
		}
		doc, err := ParseManifest(data)
		if err != nil {
			r.logUnavailable(r.manifestFile, err)
			return nil, fmt.Errorf("%s: %w", r.manifestFile, err)
		}
		return doc, nil
	})
}

// readDocument reads a document file, mapping any failure to ErrDocumentUnavailable.
func (r *Resolver) readDocument(path string) ([]byte, error) {
	data, err := fileutil.ReadFileLimited(r.open, path, MaxDocumentSize)
	if err != nil {
		r.logUnavailable(path, err)
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	return data, nil
}

func (r *Resolver) logUnavailable(path string, err error) {
	r.logger.Debug("encore document unavailable", slog.String("path", path), slog.Any("error", err))
}

// renderTags builds one tag line per file, attaching integrity when known.
func (r *Resolver) renderTags(kind FileKind, entryNames []string) SafeString {
	if len(entryNames) == 0 {
		return SafeString{}
	}

	doc, err := r.Entrypoints()
	if err != nil {
		return SafeString{}
	}

	var sb strings.Builder
	for _, file := range collectFiles(doc, kind, entryNames) {
		hash, ok := doc.IntegrityFor(file)
		writeTag(&sb, kind, file, hash, ok)
	}

	return NewSafeString(sb.String())
}

// collectFiles flattens the kind lists of the named entrypoints, then
// deduplicates and sorts them. Argument order and per-entry order do not
// survive.
func collectFiles(doc *EntrypointsDocument, kind FileKind, entryNames []string) []string {
	var files []string
	for _, name := range entryNames {
		entry, ok := doc.Entrypoints[name]
		if !ok {
			continue
		}
		files = append(files, entry.Files(kind)...)
	}

	slices.Sort(files)
	return slices.Compact(files)
}

// writeTag appends a single tag line. Paths and hashes come from the build
// documents and are written verbatim. The integrity attribute is written
// whenever the document has a key for file, even with an empty value.
func writeTag(sb *strings.Builder, kind FileKind, file, integrity string, hasIntegrity bool) {
	switch kind {
	case FileKindCSS:
		sb.WriteString(`<link rel="stylesheet" href="`)
		sb.WriteString(file)
		sb.WriteByte('"')
		if hasIntegrity {
			writeIntegrity(sb, integrity)
		}
		sb.WriteString(">\n")
	case FileKindJS:
		sb.WriteString(`<script src="`)
		sb.WriteString(file)
		sb.WriteByte('"')
		if hasIntegrity {
			writeIntegrity(sb, integrity)
		}
		sb.WriteString("></script>\n")
	}
}

func writeIntegrity(sb *strings.Builder, integrity string) {
	sb.WriteString(` integrity="`)
	sb.WriteString(integrity)
	sb.WriteByte('"')
}

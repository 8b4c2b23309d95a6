package encore

import (
	"encoding/json"
	"fmt"
)

// MaxDocumentSize limits entrypoints and manifest files to prevent memory
// exhaustion (16 MiB).
var MaxDocumentSize int64 = 16 << 20

// Entrypoint lists the files a named build output needs, in build order.
type Entrypoint struct {
	JS  []string `json:"js"`
	CSS []string `json:"css"`
}

// EntrypointsDocument is the decoded entrypoints.json written by Encore.
type EntrypointsDocument struct {
	Entrypoints map[string]Entrypoint `json:"entrypoints"`
	// Integrity maps a file path, exactly as listed in an entrypoint, to its
	// subresource-integrity hash (e.g. "sha384-...").
	Integrity map[string]string `json:"integrity,omitempty"`
}

// ManifestDocument maps a logical asset path to its physical, usually
// content-hashed, path.
type ManifestDocument map[string]string

// FileKind selects which file list of an entrypoint to read.
type FileKind int

const (
	FileKindCSS FileKind = iota
	FileKindJS
)

// String returns the entrypoints.json key for the kind.
func (k FileKind) String() string {
	switch k {
	case FileKindCSS:
		return "css"
	case FileKindJS:
		return "js"
	default:
		return fmt.Sprintf("FileKind(%d)", int(k))
	}
}

// Files returns the entrypoint's file list for kind.
func (e Entrypoint) Files(kind FileKind) []string {
	switch kind {
	case FileKindCSS:
		return e.CSS
	case FileKindJS:
		return e.JS
	default:
		return nil
	}
}

// IntegrityFor returns the integrity hash recorded for file, if any.
// A nil document has no hashes.
func (d *EntrypointsDocument) IntegrityFor(file string) (string, bool) {
	if d == nil || d.Integrity == nil {
		return "", false
	}
	hash, ok := d.Integrity[file]
	return hash, ok
}

// ParseEntrypoints decodes an entrypoints.json document.
// Top-level keys other than "entrypoints" and "integrity" are ignored.
// Returns an error wrapping ErrDocumentUnavailable if data is not valid JSON
// or exceeds MaxDocumentSize.
func ParseEntrypoints(data []byte) (*EntrypointsDocument, error) {
	if err := checkDocumentSize(data); err != nil {
		return nil, err
	}

	var doc EntrypointsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing entrypoints: %v", ErrDocumentUnavailable, err)
	}
	if doc.Entrypoints == nil {
		doc.Entrypoints = map[string]Entrypoint{}
	}
	return &doc, nil
}

// ParseManifest decodes a manifest.json document.
// Returns an error wrapping ErrDocumentUnavailable if data is not a JSON
// object of strings or exceeds MaxDocumentSize.
func ParseManifest(data []byte) (ManifestDocument, error) {
	if err := checkDocumentSize(data); err != nil {
		return nil, err
	}

	var doc ManifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %v", ErrDocumentUnavailable, err)
	}
	if doc == nil {
		doc = ManifestDocument{}
	}
	return doc, nil
}

func checkDocumentSize(data []byte) error {
	if int64(len(data)) > MaxDocumentSize {
		return fmt.Errorf("%w: document is %d bytes (max %d)", ErrDocumentUnavailable, len(data), MaxDocumentSize)
	}
	return nil
}

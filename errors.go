package encore

import "errors"

// Sentinel errors for library operations.
var (
	// ErrDocumentUnavailable indicates an entrypoints or manifest document
	// could not be read or parsed. Tag and asset operations treat it as
	// "nothing found"; Entrypoints and Manifest return it wrapped with the reason.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrUnknownDirective indicates a directive name the resolver does not implement.
	ErrUnknownDirective = errors.New("unknown directive")

	// Integrity errors.
	ErrUnsupportedAlgorithm = errors.New("unsupported integrity algorithm")
	ErrInvalidIntegrity     = errors.New("invalid integrity value")
	ErrIntegrityMismatch    = errors.New("integrity mismatch")

	// Page rendering errors.
	ErrEmptyTemplate      = errors.New("template content cannot be empty")
	ErrTemplateParse      = errors.New("template parsing failed")
	ErrTemplateRender     = errors.New("template rendering failed")
	ErrMarkdownConversion = errors.New("markdown conversion failed")
)

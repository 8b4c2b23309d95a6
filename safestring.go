package encore

import "html/template"

// SafeString is rendered markup that must be written without escaping.
// Length is the byte length of Val; hosts use it to pre-size output buffers.
type SafeString struct {
	Val    string
	Length int
}

// NewSafeString wraps s, deriving Length from it.
func NewSafeString(s string) SafeString {
	return SafeString{Val: s, Length: len(s)}
}

// String returns the raw markup.
func (s SafeString) String() string {
	return s.Val
}

// HTML returns the markup typed for html/template so it is not escaped.
func (s SafeString) HTML() template.HTML {
	return template.HTML(s.Val) // #nosec G203 -- markup built from trusted build documents
}

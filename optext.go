// Package optext recovers plain text from documents whose pages encode each
// character as an individual optical symbol (such as one QR code per
// character) arranged to mimic normal prose layout.
//
// Basic usage:
//
//	text, warnings, err := optext.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", optext.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := optext.Open("document.pdf").
//	    Zoom(6.0).
//	    Marker('+').
//	    Text()
//
// Pages with a native embedded text layer are used verbatim; all other
// pages are rasterized, their symbols detected and decoded, and the reading
// order reconstructed from symbol positions by the layout package.
package optext

import (
	"github.com/tsawler/optext/pdfdoc"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor must be closed when done, either explicitly via
// Close() or implicitly when calling a terminal operation like Text().
//
// Example:
//
//	text, warnings, err := optext.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor from an already-opened page source, such
// as a *pdfdoc.Reader. This is useful when you need more control over the
// source lifecycle, or to plug in a non-PDF backend.
// Note: The caller is responsible for closing the source.
//
// Example:
//
//	r, err := pdfdoc.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	text, warnings, err := optext.FromSource(r).Text()
func FromSource(source PageSource) *Extractor {
	return &Extractor{
		source:       source,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := optext.Must(optext.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or PageTexts() and
// panics if the error is non-nil. It discards warnings and returns just
// the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	text := optext.MustText(optext.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// compile-time check that the PDF reader satisfies the source contract.
var _ PageSource = (*pdfdoc.Reader)(nil)

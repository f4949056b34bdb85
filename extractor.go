package optext

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/tsawler/optext/detect"
	"github.com/tsawler/optext/layout"
	"github.com/tsawler/optext/model"
	"github.com/tsawler/optext/pdfdoc"
)

// PageSource is the pipeline's contract with a document backend. It
// abstracts the two external capabilities the visual path depends on:
// embedded-text extraction and page rasterization.
type PageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// EmbeddedText returns the page's native text layer, or an empty
	// string if the page has none. Absence of a text layer is not an
	// error.
	EmbeddedText(page int) (string, error)

	// Render rasterizes the page at the given zoom factor.
	Render(page int, zoom float64) (image.Image, error)
}

// Warning describes a non-fatal condition encountered while processing a
// page. A warning never stops processing; the affected page degrades to
// empty output instead.
type Warning struct {
	// Page is the zero-based page index, or -1 for document-level warnings.
	Page int

	// Message describes the condition.
	Message string
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	if w.Page < 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page+1, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// Extractor provides a fluent interface for recovering text from
// symbol-encoded documents. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string
	source   PageSource

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if source has been opened

	// Collaborators
	detector detect.Detector
	ctx      context.Context

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		detector:     e.detector,
		ctx:          e.ctx,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// Pages restricts processing to the given pages (1-indexed). Without this
// option all pages are processed.
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append([]int(nil), pages...)
	return newExt
}

// Zoom sets the render zoom factor for the visual path (default 4.0).
// Zoom scales symbol pixel size and therefore directly affects
// detectability; documents with small symbols need a higher zoom.
func (e *Extractor) Zoom(zoom float64) *Extractor {
	newExt := e.clone()
	if zoom <= 0 {
		newExt.err = fmt.Errorf("zoom factor must be positive, got %v", zoom)
		return newExt
	}
	newExt.options.zoom = zoom
	return newExt
}

// Marker sets the paragraph marker character (default '+'). Every
// occurrence in the decoded stream becomes a line break in the output and
// the marker itself is discarded.
func (e *Extractor) Marker(marker rune) *Extractor {
	newExt := e.clone()
	newExt.options.marker = marker
	return newExt
}

// Tolerance sets the row clustering tolerance as a fraction of the median
// symbol height (default 0.5).
func (e *Extractor) Tolerance(fraction float64) *Extractor {
	newExt := e.clone()
	if fraction <= 0 {
		newExt.err = fmt.Errorf("tolerance fraction must be positive, got %v", fraction)
		return newExt
	}
	newExt.options.heightTolerance = fraction
	return newExt
}

// MinTolerance sets the lower bound for the clustering tolerance in pixels
// (default 5.0).
func (e *Extractor) MinTolerance(pixels float64) *Extractor {
	newExt := e.clone()
	newExt.options.minTolerance = pixels
	return newExt
}

// PageSeparator sets the string inserted between page outputs (default
// none: a page boundary by itself implies no break, only the marker does).
func (e *Extractor) PageSeparator(sep string) *Extractor {
	newExt := e.clone()
	newExt.options.pageSeparator = sep
	return newExt
}

// WithDetector replaces the symbol detector used by the visual path.
// The default is detect.NewQRDetector().
func (e *Extractor) WithDetector(d detect.Detector) *Extractor {
	newExt := e.clone()
	newExt.detector = d
	return newExt
}

// Context sets the context passed to detection calls, allowing a caller to
// bound the external rasterize/detect work. A timed-out page degrades to
// empty output for that page; it does not abort the document.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.ctx = ctx
	return newExt
}

// ensureSource opens the source if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := pdfdoc.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = r
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases the underlying source if this Extractor owns it.
func (e *Extractor) Close() error {
	if e.ownsSource && e.sourceOpened {
		e.sourceOpened = false
		if closer, ok := e.source.(interface{ Close() error }); ok {
			return closer.Close()
		}
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	defer e.Close()
	return e.source.PageCount(), nil
}

// Text recovers the document's text: every selected page's output
// concatenated in page order, separated by the configured page separator.
// Warnings indicate non-fatal issues such as pages where no symbols could
// be detected; a non-nil error is returned only for document-level
// failures (an unreadable input, an invalid page selection).
//
// Example:
//
//	text, warnings, err := optext.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", optext.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	pages, warnings, err := e.PageTexts()
	if err != nil {
		return "", warnings, err
	}

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Text
	}
	return strings.Join(texts, e.options.pageSeparator), warnings, nil
}

// PageTexts recovers each selected page's text individually, in page
// order. See Text for warning and error semantics.
func (e *Extractor) PageTexts() ([]model.PageText, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	indices, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	results := make([]model.PageText, 0, len(indices))
	for _, idx := range indices {
		page, pageWarnings := e.extractPage(idx)
		warnings = append(warnings, pageWarnings...)
		results = append(results, page)
	}
	return results, warnings, nil
}

// resolvePages maps the 1-indexed page selection to zero-based indices,
// defaulting to all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	count := e.source.PageCount()

	if e.options.pages == nil {
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	indices := make([]int, 0, len(e.options.pages))
	for _, p := range e.options.pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", p, count)
		}
		indices = append(indices, p-1)
	}
	return indices, nil
}

// extractPage runs the per-page pipeline: embedded-text passthrough first,
// then the visual path (render, detect, cluster, order, assemble). It
// always produces a page text; a genuinely unreadable page degrades to
// empty output with a warning rather than failing the document.
func (e *Extractor) extractPage(index int) (model.PageText, []Warning) {
	var warnings []Warning

	// Embedded text wins verbatim, even if the page also carries symbols.
	embedded, err := e.source.EmbeddedText(index)
	if err != nil {
		warnings = append(warnings, Warning{Page: index,
			Message: fmt.Sprintf("embedded text extraction failed: %v", err)})
	} else if strings.TrimSpace(embedded) != "" {
		return model.PageText{Index: index, Text: embedded, Embedded: true}, nil
	}

	img, err := e.source.Render(index, e.options.zoom)
	if err != nil {
		warnings = append(warnings, Warning{Page: index,
			Message: fmt.Sprintf("render failed: %v", err)})
		return model.PageText{Index: index}, warnings
	}

	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	detector := e.detector
	if detector == nil {
		detector = detect.NewQRDetector()
	}

	detections, err := detector.Detect(ctx, img)
	if err != nil {
		warnings = append(warnings, Warning{Page: index,
			Message: fmt.Sprintf("symbol detection failed: %v", err)})
		return model.PageText{Index: index}, warnings
	}

	symbols := detect.Symbols(detections, index)
	if len(symbols) == 0 {
		warnings = append(warnings, Warning{Page: index,
			Message: fmt.Sprintf("no symbols detected; zoom factor %.1f may be too small", e.options.zoom)})
		return model.PageText{Index: index}, warnings
	}

	clusterer := layout.NewRowClustererWithConfig(layout.RowConfig{
		HeightTolerance: e.options.heightTolerance,
		MinTolerance:    e.options.minTolerance,
	})
	rows := layout.OrderRows(clusterer.Cluster(symbols))
	text := layout.NewAssemblerWithMarker(e.options.marker).Assemble(rows)

	return model.PageText{Index: index, Text: text}, warnings
}

package pdfdoc

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultZoom is the default render zoom factor. At zoom 1.0 a page is
// rendered at 72 DPI; higher zoom enlarges symbol pixel size and therefore
// directly affects detectability.
const DefaultZoom = 4.0

// Reader provides page access to a PDF document: the native text layer
// when one exists, and page rasterization for the visual path.
type Reader struct {
	doc *fitz.Document
}

// Open opens a PDF file.
// The returned Reader must be closed when done.
func Open(filename string) (*Reader, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	return &Reader{doc: doc}, nil
}

// FromBytes opens a PDF held in memory.
// The returned Reader must be closed when done.
func FromBytes(data []byte) (*Reader, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &Reader{doc: doc}, nil
}

// Close releases the underlying document.
func (r *Reader) Close() error {
	if r.doc == nil {
		return nil
	}
	return r.doc.Close()
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.doc.NumPage()
}

// EmbeddedText returns the page's native text layer, or an empty string if
// the page has none. Pages lacking a text layer are not an error.
func (r *Reader) EmbeddedText(page int) (string, error) {
	text, err := r.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("extract text from page %d: %w", page+1, err)
	}
	return text, nil
}

// Render rasterizes the page at the given zoom factor. Zoom values of zero
// or less fall back to DefaultZoom.
func (r *Reader) Render(page int, zoom float64) (image.Image, error) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	img, err := r.doc.ImageDPI(page, 72*zoom)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page+1, err)
	}
	return img, nil
}

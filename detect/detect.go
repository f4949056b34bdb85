package detect

import (
	"context"
	"image"

	"github.com/tsawler/optext/model"
)

// Detection is one decoded optical symbol found in a raster image: its
// payload and the polygon outlining it, in image coordinates.
type Detection struct {
	// Text is the decoded payload, normally a single code point.
	Text string

	// Corners are the vertices of the detected polygon.
	Corners model.Polygon
}

// Symbol converts the detection into a model symbol for the given page.
// The polygon centroid becomes the position and the polygon bounds become
// the extent. A degenerate polygon yields a degenerate symbol, which the
// row clusterer drops.
func (d Detection) Symbol(page int) model.Symbol {
	bounds := d.Corners.Bounds()
	return model.Symbol{
		Text:     d.Text,
		Position: d.Corners.Centroid(),
		Width:    bounds.Width,
		Height:   bounds.Height,
		Page:     page,
	}
}

// Symbols converts detections into model symbols for the given page.
// Detections with an empty payload are skipped.
func Symbols(detections []Detection, page int) []model.Symbol {
	symbols := make([]model.Symbol, 0, len(detections))
	for _, d := range detections {
		if d.Text == "" {
			continue
		}
		symbols = append(symbols, d.Symbol(page))
	}
	return symbols
}

// Detector finds and decodes optical symbols in a raster image.
//
// Implementations return an empty slice, not an error, when the image
// contains no symbols. Detections carry no meaningful order; callers must
// treat them as an unordered set.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}

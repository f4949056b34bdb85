package detect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/optext/model"
)

// OCRConfig holds configuration for OCR symbol detection.
type OCRConfig struct {
	// Languages are Tesseract trained-data names (default: "eng").
	Languages []string

	// Whitelist restricts recognition to the given characters. Empty means
	// no restriction. Include the paragraph marker when setting this.
	Whitelist string
}

// DefaultOCRConfig returns sensible default configuration.
func DefaultOCRConfig() OCRConfig {
	return OCRConfig{
		Languages: []string{"eng"},
	}
}

// OCRDetector recognizes individual printed glyphs with their bounding
// boxes, for documents whose per-character symbols are ordinary text
// rendered at symbol granularity rather than QR codes.
//
// It wraps the Tesseract OCR engine via gosseract and requires Tesseract
// to be installed on the system.
type OCRDetector struct {
	config OCRConfig
}

// NewOCRDetector creates an OCR detector with default configuration.
func NewOCRDetector() *OCRDetector {
	return &OCRDetector{
		config: DefaultOCRConfig(),
	}
}

// NewOCRDetectorWithConfig creates an OCR detector with custom configuration.
func NewOCRDetectorWithConfig(config OCRConfig) *OCRDetector {
	return &OCRDetector{
		config: config,
	}
}

// Detect runs symbol-level recognition over the image. Each recognized
// glyph becomes one detection with its box corners as the polygon. An
// image with no recognizable glyphs yields an empty result, not an error.
func (d *OCRDetector) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(d.config.Languages) > 0 {
		if err := client.SetLanguage(d.config.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if d.config.Whitelist != "" {
		if err := client.SetWhitelist(d.config.Whitelist); err != nil {
			return nil, fmt.Errorf("set whitelist: %w", err)
		}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, fmt.Errorf("recognize symbols: %w", err)
	}

	detections := make([]Detection, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		detections = append(detections, Detection{
			Text:    text,
			Corners: rectPolygon(box.Box),
		})
	}

	return detections, nil
}

// rectPolygon converts an image rectangle into a four-corner polygon.
func rectPolygon(r image.Rectangle) model.Polygon {
	return model.Polygon{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

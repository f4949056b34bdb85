package detect

import (
	"context"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/optext/model"
)

// QRConfig holds configuration for QR symbol detection.
type QRConfig struct {
	// TryHarder spends more time searching for symbols (default: true).
	// Per-character codes are small, so the thorough search mode pays off.
	TryHarder bool

	// MinImageSize upscales images whose smaller side is below this many
	// pixels before decoding (default: 0, disabled). Useful when pages were
	// rendered at a low zoom factor; detection coordinates are mapped back
	// to the original image space.
	MinImageSize int
}

// DefaultQRConfig returns sensible default configuration.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		TryHarder:    true,
		MinImageSize: 0,
	}
}

// QRDetector finds and decodes all QR codes in a raster image. Each code's
// payload is one character of the encoded document.
type QRDetector struct {
	config QRConfig
}

// NewQRDetector creates a QR detector with default configuration.
func NewQRDetector() *QRDetector {
	return &QRDetector{
		config: DefaultQRConfig(),
	}
}

// NewQRDetectorWithConfig creates a QR detector with custom configuration.
func NewQRDetectorWithConfig(config QRConfig) *QRDetector {
	return &QRDetector{
		config: config,
	}
}

// Detect decodes every readable QR code in the image. An image containing
// no codes yields an empty result, not an error.
func (d *QRDetector) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, scale := d.upscale(img)

	source := gozxing.NewLuminanceSourceFromImage(img)
	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return nil, fmt.Errorf("binarize image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{}
	if d.config.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	results, err := qrcode.NewQRCodeMultiReader().DecodeMultiple(bitmap, hints)
	if err != nil {
		if _, ok := err.(gozxing.NotFoundException); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("decode symbols: %w", err)
	}

	detections := make([]Detection, 0, len(results))
	for _, result := range results {
		points := result.GetResultPoints()
		corners := make(model.Polygon, 0, len(points))
		for _, pt := range points {
			corners = append(corners, model.Point{
				X: pt.GetX() / scale,
				Y: pt.GetY() / scale,
			})
		}
		detections = append(detections, Detection{
			Text:    result.GetText(),
			Corners: corners,
		})
	}

	return detections, nil
}

// upscale enlarges the image until its smaller side reaches MinImageSize,
// returning the (possibly original) image and the applied scale factor.
func (d *QRDetector) upscale(img image.Image) (image.Image, float64) {
	min := d.config.MinImageSize
	if min <= 0 {
		return img, 1
	}

	bounds := img.Bounds()
	smaller := bounds.Dx()
	if bounds.Dy() < smaller {
		smaller = bounds.Dy()
	}
	if smaller <= 0 || smaller >= min {
		return img, 1
	}

	scale := float64(min) / float64(smaller)
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(bounds.Dx())*scale+0.5),
		int(float64(bounds.Dy())*scale+0.5)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst, scale
}

// Package detect finds and decodes optical symbols in raster images.
//
// The [Detector] interface is the pipeline's contract with the detection
// backend: one image in, an unordered set of decoded (payload, polygon)
// pairs out. Two engines are provided:
//
//   - [QRDetector] - decodes QR codes via gozxing; the default, matching
//     documents that encode one character per QR code
//   - [OCRDetector] - symbol-level Tesseract recognition via gosseract,
//     for documents whose symbols are printed glyphs
//
// [Symbols] converts detections into model symbols, deriving each symbol's
// position from its polygon centroid and its extent from the polygon
// bounds.
package detect

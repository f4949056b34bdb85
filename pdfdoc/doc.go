// Package pdfdoc provides PDF page access for the extraction pipeline.
//
// It wraps MuPDF via go-fitz, which requires no external installation.
// The [Reader] exposes exactly what the pipeline needs from a document:
// the page count, each page's embedded text layer (empty when absent),
// and page rasterization at a configurable zoom factor.
package pdfdoc

// Package model provides the data types shared across the extraction
// pipeline.
//
// A [Symbol] is one decoded optical code with its page-space position and
// approximate size. The layout package groups symbols into [Row] values and
// orders them into reading order. [PageText] carries the recovered text of a
// single page back to the document-level driver.
//
// Geometric primitives support position calculations:
//
//   - [Point] - 2D point in image coordinates (Y increases downward)
//   - [BBox] - bounding box
//   - [Polygon] - detected symbol outline with centroid and bounds
package model

package model

import "math"

// Point represents a 2D point in image coordinates (origin top-left,
// Y increasing downward).
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box (rectangle).
type BBox struct {
	X      float64 // Left
	Y      float64 // Top (image coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Polygon is a sequence of vertices outlining a detected symbol,
// in image coordinates.
type Polygon []Point

// Centroid returns the mean of the polygon's vertices. Detectors report
// symbol corners, so the vertex mean is the symbol's representative point.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, pt := range p {
		sumX += pt.X
		sumY += pt.Y
	}
	n := float64(len(p))
	return Point{X: sumX / n, Y: sumY / n}
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p Polygon) Bounds() BBox {
	if len(p) == 0 {
		return BBox{}
	}
	minX, maxX := p[0].X, p[0].X
	minY, maxY := p[0].Y, p[0].Y
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsDegenerate returns true if the polygon has fewer than three vertices
// or encloses no area.
func (p Polygon) IsDegenerate() bool {
	if len(p) < 3 {
		return true
	}
	return p.Bounds().IsEmpty()
}

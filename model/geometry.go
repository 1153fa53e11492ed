package model

import "math"

// Point represents a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox is an axis-aligned rectangle in page points. The origin is the
// top-left corner of the page; Y1 >= Y0 for a valid box.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// NewBBox creates a bounding box from two corner coordinates,
// normalizing so that X0 <= X1 and Y0 <= Y1.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterY returns the vertical centre, used for visual-line clustering.
func (b BBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Center returns the centre point.
func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return math.Max(0, b.Width()) * math.Max(0, b.Height())
}

// Intersects checks whether two boxes share any area.
func (b BBox) Intersects(other BBox) bool {
	return b.X0 < other.X1 && b.X1 > other.X0 &&
		b.Y0 < other.Y1 && b.Y1 > other.Y0
}

// Intersection returns the overlapping rectangle, or a zero box when
// the boxes do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}
	return BBox{
		X0: math.Max(b.X0, other.X0),
		Y0: math.Max(b.Y0, other.Y0),
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
	}
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// OverlapRatio returns intersection area divided by the smaller box
// area, in [0, 1].
func (b BBox) OverlapRatio(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}
	minArea := math.Min(b.Area(), other.Area())
	if minArea == 0 {
		return 0
	}
	return b.Intersection(other).Area() / minArea
}

// Clamp restricts the box to the page rectangle [0,0,w,h].
func (b BBox) Clamp(pageWidth, pageHeight float64) BBox {
	clamp := func(v, hi float64) float64 {
		return math.Max(0, math.Min(v, hi))
	}
	return BBox{
		X0: clamp(b.X0, pageWidth),
		Y0: clamp(b.Y0, pageHeight),
		X1: clamp(b.X1, pageWidth),
		Y1: clamp(b.Y1, pageHeight),
	}
}

// IsValid reports whether the box has positive width and height.
func (b BBox) IsValid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// IsDegenerate reports whether either dimension is below min points.
// Degenerate boxes are dropped rather than surfaced to users.
func (b BBox) IsDegenerate(min float64) bool {
	return b.Width() < min || b.Height() < min
}

// UnionAll returns the merged bounding box of all boxes. Returns a
// zero box for an empty slice.
func UnionAll(boxes []BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}

package geo

import "math"

// Rect is an axis-aligned rectangle covering the half-open region
// [Min.X, Min.X+Width) × [Min.Z, Min.Z+Depth).
type Rect struct {
	Min   Point2D `json:"min"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// NewRect builds a rectangle from its minimum corner and size.
func NewRect(x, z, width, depth float64) Rect {
	return Rect{Min: Pt(x, z), Width: width, Depth: depth}
}

// Max returns the exclusive far corner.
func (r Rect) Max() Point2D {
	return Point2D{r.Min.X + r.Width, r.Min.Z + r.Depth}
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point2D {
	return Point2D{r.Min.X + r.Width/2, r.Min.Z + r.Depth/2}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Depth
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Depth <= 0
}

// Intersection returns the overlapping region of r and o.
// The result is empty when they only touch along an edge.
func (r Rect) Intersection(o Rect) Rect {
	rMax, oMax := r.Max(), o.Max()
	x0 := math.Max(r.Min.X, o.Min.X)
	z0 := math.Max(r.Min.Z, o.Min.Z)
	x1 := math.Min(rMax.X, oMax.X)
	z1 := math.Min(rMax.Z, oMax.Z)
	if x1-x0 <= Epsilon || z1-z0 <= Epsilon {
		return Rect{Min: Pt(x0, z0)}
	}
	return NewRect(x0, z0, x1-x0, z1-z0)
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersection(o).IsEmpty()
}

// Within reports whether r lies entirely inside bounds.
func (r Rect) Within(bounds Rect) bool {
	rMax, bMax := r.Max(), bounds.Max()
	return r.Min.X >= bounds.Min.X-Epsilon &&
		r.Min.Z >= bounds.Min.Z-Epsilon &&
		rMax.X <= bMax.X+Epsilon &&
		rMax.Z <= bMax.Z+Epsilon
}

// Union returns the smallest rectangle enclosing r and o.
func (r Rect) Union(o Rect) Rect {
	rMax, oMax := r.Max(), o.Max()
	x0 := math.Min(r.Min.X, o.Min.X)
	z0 := math.Min(r.Min.Z, o.Min.Z)
	x1 := math.Max(rMax.X, oMax.X)
	z1 := math.Max(rMax.Z, oMax.Z)
	return NewRect(x0, z0, x1-x0, z1-z0)
}

// Package geometry provides the axis-aligned rectangle math used by the
// selection kernel. Coordinates are absolute document coordinates
// (scroll-independent), growing right and down.
package geometry

import "fmt"

// Rect is an axis-aligned rectangle. Well-formed rects satisfy
// Right >= Left and Bottom >= Top; construct them from arbitrary corner
// points with RectFromPoints.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromPoints builds a well-formed rectangle from two opposite corners,
// in any drag direction.
func RectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		Left:   min(x1, x2),
		Top:    min(y1, y2),
		Right:  max(x1, x2),
		Bottom: max(y1, y2),
	}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area returns the rectangle's area, 0 for degenerate rects.
func (r Rect) Area() float64 {
	if r.Width() <= 0 || r.Height() <= 0 {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Area() == 0 }

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

// OverlapFraction returns the fraction of a covered by b, in [0,1].
// The measure is asymmetric: it answers "how much of this candidate lies
// inside the selection box". Disjoint rectangles and zero-area candidates
// yield 0.
func OverlapFraction(a, b Rect) float64 {
	area := a.Area()
	if area == 0 {
		return 0
	}

	interW := min(a.Right, b.Right) - max(a.Left, b.Left)
	interH := min(a.Bottom, b.Bottom) - max(a.Top, b.Top)
	if interW <= 0 || interH <= 0 {
		return 0
	}

	return (interW * interH) / area
}

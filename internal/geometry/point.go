package geometry

// Point is a position in absolute document coordinates.
type Point struct {
	X float64
	Y float64
}

// RectBetween builds the well-formed rectangle spanned by two points.
func RectBetween(a, b Point) Rect {
	return RectFromPoints(a.X, a.Y, b.X, b.Y)
}

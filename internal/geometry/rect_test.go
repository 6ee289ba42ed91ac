package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectFromPoints_NormalizesCorners(t *testing.T) {
	want := Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}

	// All four drag directions produce the same rectangle.
	assert.Equal(t, want, RectFromPoints(10, 20, 110, 220))
	assert.Equal(t, want, RectFromPoints(110, 220, 10, 20))
	assert.Equal(t, want, RectFromPoints(10, 220, 110, 20))
	assert.Equal(t, want, RectFromPoints(110, 20, 10, 220))
}

func TestRect_Dimensions(t *testing.T) {
	r := Rect{Left: 5, Top: 10, Right: 25, Bottom: 40}
	assert.Equal(t, 20.0, r.Width())
	assert.Equal(t, 30.0, r.Height())
	assert.Equal(t, 600.0, r.Area())
	assert.False(t, r.Empty())

	// Degenerate rects have zero area.
	line := Rect{Left: 5, Top: 10, Right: 5, Bottom: 40}
	assert.Equal(t, 0.0, line.Area())
	assert.True(t, line.Empty())

	point := RectFromPoints(7, 7, 7, 7)
	assert.True(t, point.Empty())
}

func TestOverlapFraction_SelfAndDisjoint(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}

	// Full self-overlap.
	assert.Equal(t, 1.0, OverlapFraction(a, a))

	// Disjoint rectangles.
	b := Rect{Left: 200, Top: 200, Right: 300, Bottom: 300}
	assert.Equal(t, 0.0, OverlapFraction(a, b))
	assert.Equal(t, 0.0, OverlapFraction(b, a))
}

func TestOverlapFraction_ZeroAreaCandidate(t *testing.T) {
	box := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	line := Rect{Left: 10, Top: 10, Right: 10, Bottom: 90}

	// A zero-area candidate never matches, even when fully inside the box.
	assert.Equal(t, 0.0, OverlapFraction(line, box))
}

func TestOverlapFraction_PartialCover(t *testing.T) {
	candidate := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}

	// Box covers exactly the left half of the candidate.
	half := Rect{Left: 0, Top: 0, Right: 50, Bottom: 100}
	assert.Equal(t, 0.5, OverlapFraction(candidate, half))

	// Box covers the top-left quarter.
	quarter := Rect{Left: 0, Top: 0, Right: 50, Bottom: 50}
	assert.Equal(t, 0.25, OverlapFraction(candidate, quarter))
}

func TestOverlapFraction_Asymmetry(t *testing.T) {
	small := Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}
	big := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}

	// The small rect is fully covered by the big one.
	assert.Equal(t, 1.0, OverlapFraction(small, big))

	// Only 1% of the big rect is covered by the small one.
	assert.InDelta(t, 0.01, OverlapFraction(big, small), 1e-12)
}

func TestOverlapFraction_TouchingEdges(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	b := Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}

	// Sharing an edge is not overlapping.
	assert.Equal(t, 0.0, OverlapFraction(a, b))
}

func TestOverlapFraction_StaysInUnitInterval(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
	}{
		{"nested", Rect{10, 10, 20, 20}, Rect{0, 0, 100, 100}},
		{"offset", Rect{0, 0, 60, 60}, Rect{30, 30, 90, 90}},
		{"identical", Rect{5, 5, 15, 15}, Rect{5, 5, 15, 15}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 60, 60}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := OverlapFraction(tc.a, tc.b)
			require.GreaterOrEqual(t, f, 0.0)
			require.LessOrEqual(t, f, 1.0)
		})
	}
}

package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/selection"
)

func ids(result []selection.ElementView) []string {
	out := make([]string, len(result))
	for i, el := range result {
		out[i] = el.ID()
	}
	return out
}

func TestSelector_OverlapThresholdIsStrict(t *testing.T) {
	s := newSelector()

	button := fixture.New(fixture.Spec{ID: "btn", Tag: "button", Bounds: box(0, 0, 100, 100)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 800, 600)}).Append(button))

	// Exactly half covered: excluded.
	assert.Empty(t, s.SelectInRect(box(0, 0, 100, 50), candidates, nil))

	// Just over half: included.
	result := s.SelectInRect(box(0, 0, 100, 51), candidates, nil)
	assert.Equal(t, []string{"btn"}, ids(result))
}

func TestSelector_AppliesExcludePredicate(t *testing.T) {
	s := newSelector()

	own := fixture.New(fixture.Spec{ID: "lasso-toast", Tag: "button", Bounds: box(10, 10, 90, 40)})
	page := fixture.New(fixture.Spec{ID: "real", Tag: "button", Bounds: box(10, 50, 90, 80)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 200, 200)}).Append(own, page))

	exclude := func(el selection.ElementView) bool { return el.ID() == "lasso-toast" }
	result := s.SelectInRect(box(0, 0, 200, 200), candidates, exclude)
	assert.Equal(t, []string{"real"}, ids(result))
}

func TestSelector_SkipsInvisibleAndInsignificant(t *testing.T) {
	s := newSelector()

	hidden := fixture.New(fixture.Spec{
		ID: "hidden", Tag: "button", Bounds: box(10, 10, 90, 40),
		Styles: map[string]string{"display": "none"},
	})
	plain := fixture.New(fixture.Spec{ID: "plain", Tag: "div", Bounds: box(10, 50, 90, 80)})
	link := fixture.New(fixture.Spec{ID: "link", Tag: "a", Href: "/x", Bounds: box(10, 90, 90, 120)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 200, 200)}).Append(hidden, plain, link))

	result := s.SelectInRect(box(0, 0, 200, 200), candidates, nil)
	assert.Equal(t, []string{"link"}, ids(result))
}

func TestSelector_ContainmentDedupKeepsOuterElement(t *testing.T) {
	s := newSelector()

	inner := fixture.New(fixture.Spec{ID: "inner", Tag: "a", Href: "/open", Bounds: box(20, 20, 120, 50)})
	card := fixture.New(fixture.Spec{
		ID: "card", Tag: "div", Bounds: box(10, 10, 200, 150),
		Styles: map[string]string{"border-style": "solid"},
	}).Append(inner)
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 400, 400)}).Append(card))

	result := s.SelectInRect(box(0, 0, 400, 400), candidates, nil)
	assert.Equal(t, []string{"card"}, ids(result))
}

func TestSelector_NeverReturnsNestedPairs(t *testing.T) {
	s := newSelector()

	leaf := fixture.New(fixture.Spec{ID: "leaf", Tag: "a", Href: "/l", Bounds: box(30, 30, 80, 60)})
	mid := fixture.New(fixture.Spec{
		ID: "mid", Tag: "div", Bounds: box(20, 20, 180, 120),
		Styles: map[string]string{"background-color": "rgb(10, 10, 10)"},
	}).Append(leaf)
	outer := fixture.New(fixture.Spec{
		ID: "outer", Tag: "div", Bounds: box(10, 10, 200, 140),
		Styles: map[string]string{"border-radius": "4px"},
	}).Append(mid)
	sibling := fixture.New(fixture.Spec{ID: "sib", Tag: "button", Bounds: box(220, 10, 300, 50)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 400, 400)}).Append(outer, sibling))

	result := s.SelectInRect(box(0, 0, 400, 400), candidates, nil)

	for i, a := range result {
		for j, b := range result {
			if i == j {
				continue
			}
			require.False(t, a.Contains(b), "%s contains %s", a.ID(), b.ID())
		}
	}
	assert.Equal(t, []string{"outer", "sib"}, ids(result))
}

func TestSelector_DepthOrderingShallowestFirst(t *testing.T) {
	s := newSelector()

	deep := fixture.New(fixture.Spec{ID: "deep", Tag: "button", Bounds: box(10, 100, 90, 130)})
	wrapper := fixture.New(fixture.Spec{Tag: "div", Bounds: box(10, 90, 100, 140)}).Append(deep)
	shallow := fixture.New(fixture.Spec{ID: "shallow", Tag: "button", Bounds: box(10, 10, 90, 40)})

	// Document order puts the deep element first; depth order must win.
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 200, 200)}).Append(wrapper, shallow))

	result := s.SelectInRect(box(0, 0, 200, 200), candidates, nil)
	assert.Equal(t, []string{"shallow", "deep"}, ids(result))
}

func TestSelector_SiblingOverlapKeepsBoth(t *testing.T) {
	s := newSelector()

	// Overlapping siblings have no containment relation, so both stay.
	left := fixture.New(fixture.Spec{ID: "left", Tag: "button", Bounds: box(10, 10, 100, 60)})
	right := fixture.New(fixture.Spec{ID: "right", Tag: "button", Bounds: box(60, 10, 150, 60)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 200, 200)}).Append(left, right))

	result := s.SelectInRect(box(0, 0, 200, 200), candidates, nil)
	assert.Equal(t, []string{"left", "right"}, ids(result))
}

func TestSelector_AnchorInsideLargeDiv(t *testing.T) {
	s := newSelector()

	anchor := fixture.New(fixture.Spec{ID: "anchor", Tag: "a", Href: "/go", Bounds: box(100, 100, 200, 200)})
	wrapper := fixture.New(fixture.Spec{ID: "wrapper", Tag: "div", Bounds: box(0, 0, 500, 500)}).Append(anchor)
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 500, 500)}).Append(wrapper))

	// The rect covers both fully; the wrapper is rejected by the container
	// rule, so only the anchor comes back.
	result := s.SelectInRect(box(0, 0, 500, 500), candidates, nil)
	assert.Equal(t, []string{"anchor"}, ids(result))
}

func TestSelector_TwoSiblingButtons(t *testing.T) {
	s := newSelector()

	save := fixture.New(fixture.Spec{ID: "save", Tag: "button", Text: "Save", Bounds: box(10, 10, 60, 60)})
	undo := fixture.New(fixture.Spec{ID: "undo", Tag: "button", Text: "Undo", Bounds: box(80, 10, 130, 60)})
	candidates := elems(fixture.New(fixture.Spec{Tag: "body", Bounds: box(0, 0, 200, 100)}).Append(save, undo))

	result := s.SelectInRect(box(0, 0, 200, 100), candidates, nil)
	assert.Equal(t, []string{"save", "undo"}, ids(result))
}

func TestSelector_DeterministicAcrossRuns(t *testing.T) {
	s := newSelector()
	doc := fixture.Demo()
	rect := box(0, 0, 800, 480)

	first := ids(s.SelectInRect(rect, doc.Elements(), nil))
	for range 5 {
		assert.Equal(t, first, ids(s.SelectInRect(rect, doc.Elements(), nil)))
	}
	require.NotEmpty(t, first)
}

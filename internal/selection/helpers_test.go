package selection_test

import (
	"context"

	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/selection"
)

func box(left, top, right, bottom float64) geometry.Rect {
	return geometry.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// elems assembles a document around root and returns its candidates in
// encounter order.
func elems(root *fixture.Element) []selection.ElementView {
	return fixture.NewDocument(root).Elements()
}

func newClassifier() *selection.Classifier {
	return selection.NewClassifier(context.Background(), selection.DefaultPolicy())
}

func newSelector() *selection.Selector {
	policy := selection.DefaultPolicy()
	return selection.NewSelector(context.Background(), policy, selection.NewClassifier(context.Background(), policy))
}

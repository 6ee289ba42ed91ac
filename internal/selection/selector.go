package selection

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/logging"
)

// Selector picks the minimal set of meaningful, visible, non-nested
// elements whose bounds sufficiently overlap a selection rectangle.
type Selector struct {
	policy     Policy
	classifier *Classifier
	logger     zerolog.Logger
}

// NewSelector builds a selector around the given classifier.
func NewSelector(ctx context.Context, policy Policy, classifier *Classifier) *Selector {
	return &Selector{
		policy:     policy,
		classifier: classifier,
		logger:     logging.FromContext(ctx).With().Str("component", "selector").Logger(),
	}
}

// SelectInRect returns the selected elements, shallowest DOM depth first,
// exactly one outer element per containment chain. Candidates must be in
// document encounter order; ties on depth keep that order. The exclude
// predicate (may be nil) removes host UI elements before any heuristic
// runs.
func (s *Selector) SelectInRect(rect geometry.Rect, candidates []ElementView, exclude ExcludeFunc) []ElementView {
	type ranked struct {
		el    ElementView
		depth int
	}

	kept := make([]ranked, 0, 16)
	for _, el := range candidates {
		if exclude != nil && exclude(el) {
			continue
		}
		if !Interactable(el) {
			continue
		}
		// Strict inequality: a candidate at exactly the threshold is out.
		if geometry.OverlapFraction(el.Bounds(), rect) <= s.policy.OverlapThreshold {
			continue
		}
		if !s.classifier.Significant(el) {
			continue
		}
		kept = append(kept, ranked{el: el, depth: el.Depth()})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].depth < kept[j].depth
	})

	// Containment dedup: drop anything nested inside an element already
	// selected. Quadratic in the kept set, which stays small in practice.
	result := make([]ElementView, 0, len(kept))
	for _, cand := range kept {
		nested := false
		for _, out := range result {
			if out.Contains(cand.el) {
				nested = true
				break
			}
		}
		if !nested {
			result = append(result, cand.el)
		}
	}

	s.logger.Debug().
		Str("rect", rect.String()).
		Int("candidates", len(candidates)).
		Int("overlapping", len(kept)).
		Int("selected", len(result)).
		Msg("selection computed")

	return result
}

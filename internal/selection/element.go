// Package selection implements the element-selection kernel: deciding which
// elements of a document are interactable and meaningful, and picking the
// minimal non-nested set of them inside a selection rectangle. The kernel is
// host-agnostic; hosts supply candidates through the ElementView interface.
package selection

import (
	"strings"

	"github.com/bnema/lasso/internal/geometry"
)

// ElementView is a transient, read-only view of one render-tree node taken
// at selection time. Implementations own no element lifecycle; they only
// answer queries against a snapshot of host state.
type ElementView interface {
	// ID is stable within one snapshot and names the element for
	// activation and highlighting.
	ID() string
	// Bounds returns the bounding rectangle in absolute document
	// coordinates.
	Bounds() geometry.Rect
	// Style returns the computed value of a CSS property ("display",
	// "visibility", "opacity", "cursor", "border-style", "border-radius",
	// "background-color").
	Style(property string) string
	// Tag returns the lower-case tag name.
	Tag() string
	// Role returns the ARIA role attribute, or "" when absent.
	Role() string
	// Text returns the trimmed text content.
	Text() string
	// ChildCount returns the number of child elements.
	ChildCount() int
	// HasClickHandler reports whether an inline click handler attribute is
	// present.
	HasClickHandler() bool
	// Href returns the href attribute, or "" when absent.
	Href() string
	// Source returns the media source attribute, or "" when absent.
	Source() string
	// Depth returns the count of ancestor steps to the document root.
	Depth() int
	// Contains reports whether other is a structural descendant of this
	// element.
	Contains(other ElementView) bool
}

// ExcludeFunc filters candidates before any heuristic runs. Hosts use it to
// keep their own UI (overlay, toast, highlights) out of selections.
type ExcludeFunc func(ElementView) bool

// TextRepresentation returns the textual stand-in for an element when
// copying a selection: text content, else link target, else media source.
// Returns "" when the element has none of the three.
func TextRepresentation(el ElementView) string {
	if text := strings.TrimSpace(el.Text()); text != "" {
		return text
	}
	if href := el.Href(); href != "" {
		return href
	}
	return el.Source()
}

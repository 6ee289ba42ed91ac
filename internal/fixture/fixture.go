// Package fixture provides synthetic document trees and in-memory
// collaborator implementations, so the selection kernel can be exercised
// end to end without a render tree: in package tests and in the terminal
// sandbox.
package fixture

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/selection"
)

// Spec describes one synthetic element. Zero values mean "absent"; styles
// default to visible and unstyled.
type Spec struct {
	ID      string
	Tag     string
	Role    string
	Text    string
	Href    string
	Source  string
	OnClick bool
	Bounds  geometry.Rect
	Styles  map[string]string

	// FocusErr/ClickErr make the corresponding activation call fail.
	FocusErr error
	ClickErr error
}

// Element is a synthetic render-tree node. It implements
// selection.ElementView and records activations for assertions.
type Element struct {
	spec     Spec
	parent   *Element
	children []*Element

	clicks  atomic.Int32
	focuses atomic.Int32
}

// New creates a detached element from its spec.
func New(spec Spec) *Element {
	return &Element{spec: spec}
}

// Append attaches children and returns the element for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

func (e *Element) ID() string             { return e.spec.ID }
func (e *Element) Bounds() geometry.Rect  { return e.spec.Bounds }
func (e *Element) Tag() string            { return e.spec.Tag }
func (e *Element) Role() string           { return e.spec.Role }
func (e *Element) Text() string           { return e.spec.Text }
func (e *Element) ChildCount() int        { return len(e.children) }
func (e *Element) HasClickHandler() bool  { return e.spec.OnClick }
func (e *Element) Href() string           { return e.spec.Href }
func (e *Element) Source() string         { return e.spec.Source }

// Style returns the configured computed style, "" for unset properties.
func (e *Element) Style(property string) string {
	return e.spec.Styles[property]
}

// Depth counts ancestor steps to the document root.
func (e *Element) Depth() int {
	depth := 0
	for p := e.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Contains reports whether other is a structural descendant of e.
func (e *Element) Contains(other selection.ElementView) bool {
	o, ok := other.(*Element)
	if !ok {
		return false
	}
	for p := o.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Clicks returns how many times the element was click-activated.
func (e *Element) Clicks() int { return int(e.clicks.Load()) }

// Focuses returns how many times the element was focused.
func (e *Element) Focuses() int { return int(e.focuses.Load()) }

// Document is an assembled fixture tree. It implements port.DocumentView
// and port.Activator.
type Document struct {
	root    *Element
	ordered []*Element
	byID    map[string]*Element

	textInputFocused atomic.Bool
}

// NewDocument assembles a tree: elements without an explicit ID get
// preorder ones, and the encounter order is frozen.
func NewDocument(root *Element) *Document {
	d := &Document{
		root: root,
		byID: make(map[string]*Element),
	}
	d.index(root)
	return d
}

func (d *Document) index(e *Element) {
	if e.spec.ID == "" {
		e.spec.ID = fmt.Sprintf("el-%d", len(d.ordered))
	}
	d.ordered = append(d.ordered, e)
	d.byID[e.spec.ID] = e
	for _, c := range e.children {
		d.index(c)
	}
}

// Elements returns every element in document encounter order.
func (d *Document) Elements() []selection.ElementView {
	views := make([]selection.ElementView, len(d.ordered))
	for i, e := range d.ordered {
		views[i] = e
	}
	return views
}

// Element looks an element up by ID, nil when absent.
func (d *Document) Element(id string) *Element {
	return d.byID[id]
}

// SetTextInputFocused marks keyboard focus as being inside a
// text-input-like element.
func (d *Document) SetTextInputFocused(v bool) {
	d.textInputFocused.Store(v)
}

// Snapshot implements port.DocumentView.
func (d *Document) Snapshot(_ context.Context) (*port.Snapshot, error) {
	return &port.Snapshot{
		Elements:         d.Elements(),
		TextInputFocused: d.textInputFocused.Load(),
	}, nil
}

// Focus implements port.Activator.
func (d *Document) Focus(_ context.Context, elementID string) error {
	e := d.byID[elementID]
	if e == nil {
		return fmt.Errorf("focus: no element %q", elementID)
	}
	if e.spec.FocusErr != nil {
		return e.spec.FocusErr
	}
	e.focuses.Add(1)
	return nil
}

// Click implements port.Activator.
func (d *Document) Click(_ context.Context, elementID string) error {
	e := d.byID[elementID]
	if e == nil {
		return fmt.Errorf("click: no element %q", elementID)
	}
	if e.spec.ClickErr != nil {
		return e.spec.ClickErr
	}
	e.clicks.Add(1)
	return nil
}

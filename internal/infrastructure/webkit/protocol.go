package webkit

import (
	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/selection"
)

// PageEvent is the envelope the content script posts for key and pointer
// activity. Pointer-up events carry the snapshot taken at release time.
type PageEvent struct {
	Type             string           `json:"type"`
	Key              string           `json:"key,omitempty"`
	Phase            string           `json:"phase,omitempty"`
	Repeat           bool             `json:"repeat,omitempty"`
	TextInputFocused bool             `json:"textInputFocused,omitempty"`
	X                float64          `json:"x,omitempty"`
	Y                float64          `json:"y,omitempty"`
	Snapshot         *SnapshotPayload `json:"snapshot,omitempty"`
}

// SnapshotPayload is the wire form of one document snapshot. Elements
// arrive in preorder, so a parent index always precedes its children.
type SnapshotPayload struct {
	Elements         []ElementRecord `json:"elements"`
	TextInputFocused bool            `json:"textInputFocused"`
}

// ElementRecord is the wire form of one candidate element.
type ElementRecord struct {
	ID       string            `json:"id"`
	Index    int               `json:"index"`
	Parent   int               `json:"parent"`
	Tag      string            `json:"tag"`
	Role     string            `json:"role"`
	Text     string            `json:"text"`
	Href     string            `json:"href"`
	Src      string            `json:"src"`
	OnClick  bool              `json:"onclick"`
	Children int               `json:"children"`
	Rect     RectRecord        `json:"rect"`
	Style    map[string]string `json:"style"`
}

// RectRecord mirrors a DOMRect in viewport coordinates.
type RectRecord struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// snapshotDocument backs the element views decoded from one payload.
// Containment and depth come from the recorded parent indices.
type snapshotDocument struct {
	records []ElementRecord
	depths  []int
}

// DecodeSnapshot converts a wire payload into kernel element views.
func DecodeSnapshot(payload *SnapshotPayload) *port.Snapshot {
	doc := &snapshotDocument{
		records: payload.Elements,
		depths:  make([]int, len(payload.Elements)),
	}
	for i, rec := range payload.Elements {
		if rec.Parent >= 0 && rec.Parent < i {
			doc.depths[i] = doc.depths[rec.Parent] + 1
		}
	}

	views := make([]selection.ElementView, len(payload.Elements))
	for i := range payload.Elements {
		views[i] = snapshotElement{doc: doc, idx: i}
	}

	return &port.Snapshot{
		Elements:         views,
		TextInputFocused: payload.TextInputFocused,
	}
}

// snapshotElement adapts one wire record to selection.ElementView.
type snapshotElement struct {
	doc *snapshotDocument
	idx int
}

func (e snapshotElement) rec() *ElementRecord { return &e.doc.records[e.idx] }

func (e snapshotElement) ID() string { return e.rec().ID }

func (e snapshotElement) Bounds() geometry.Rect {
	r := e.rec().Rect
	return geometry.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func (e snapshotElement) Style(property string) string { return e.rec().Style[property] }
func (e snapshotElement) Tag() string                  { return e.rec().Tag }
func (e snapshotElement) Role() string                 { return e.rec().Role }
func (e snapshotElement) Text() string                 { return e.rec().Text }
func (e snapshotElement) ChildCount() int              { return e.rec().Children }
func (e snapshotElement) HasClickHandler() bool        { return e.rec().OnClick }
func (e snapshotElement) Href() string                 { return e.rec().Href }
func (e snapshotElement) Source() string               { return e.rec().Src }
func (e snapshotElement) Depth() int                   { return e.doc.depths[e.idx] }

// Contains walks other's parent chain. Views from different snapshots are
// never related.
func (e snapshotElement) Contains(other selection.ElementView) bool {
	o, ok := other.(snapshotElement)
	if !ok || o.doc != e.doc {
		return false
	}
	for p := o.rec().Parent; p >= 0; p = e.doc.records[p].Parent {
		if p == e.idx {
			return true
		}
	}
	return false
}

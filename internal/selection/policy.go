package selection

import (
	"fmt"
	"time"
)

// Policy carries every tunable of the selection kernel. The zero value is
// not usable; start from DefaultPolicy and override from configuration.
type Policy struct {
	// OverlapThreshold is the fraction of a candidate that must lie inside
	// the selection rectangle, exclusive: a candidate at exactly the
	// threshold is not selected.
	OverlapThreshold float64

	// MinDimension rejects elements with a rendered width or height below
	// this many pixels before any other rule runs.
	MinDimension float64

	// StyledMaxDimension caps both dimensions of elements accepted purely
	// for carrying a distinguishing style.
	StyledMaxDimension float64

	// ContainerMaxDimension and ContainerMaxChildren bound the explicit
	// reject rule for generic containers.
	ContainerMaxDimension float64
	ContainerMaxChildren  int

	// SignificantTags and SignificantRoles are the accept allow-lists.
	// ContainerTags names the generic container tags subject to the
	// container reject rule.
	SignificantTags  []string
	SignificantRoles []string
	ContainerTags    []string

	// StaggerInterval spaces batch activations apart.
	StaggerInterval time.Duration

	// DoublePressWindow bounds the trigger double-press clear gesture.
	DoublePressWindow time.Duration

	// ToastDuration is how long the selection-count toast stays up.
	ToastDuration time.Duration
}

// DefaultPolicy returns the built-in tuning.
func DefaultPolicy() Policy {
	return Policy{
		OverlapThreshold:      0.5,
		MinDimension:          5,
		StyledMaxDimension:    500,
		ContainerMaxDimension: 400,
		ContainerMaxChildren:  5,
		SignificantTags: []string{
			"a", "button", "input", "select", "textarea",
			"img", "video", "audio",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "li", "td", "tr", "label", "option",
			"canvas", "svg", "iframe", "dt", "dd",
		},
		SignificantRoles: []string{
			"button", "link", "checkbox", "radio", "menuitem",
			"tab", "tabpanel", "listitem", "option", "heading",
			"img", "banner", "navigation",
		},
		ContainerTags:     []string{"div", "section"},
		StaggerInterval:   100 * time.Millisecond,
		DoublePressWindow: 300 * time.Millisecond,
		ToastDuration:     3 * time.Second,
	}
}

// Validate checks policy consistency.
func (p Policy) Validate() error {
	if p.OverlapThreshold <= 0 || p.OverlapThreshold > 1 {
		return fmt.Errorf("overlap threshold %g outside (0,1]", p.OverlapThreshold)
	}
	if p.MinDimension < 0 {
		return fmt.Errorf("min dimension %g is negative", p.MinDimension)
	}
	if p.StyledMaxDimension <= 0 {
		return fmt.Errorf("styled max dimension %g must be positive", p.StyledMaxDimension)
	}
	if p.ContainerMaxDimension <= 0 {
		return fmt.Errorf("container max dimension %g must be positive", p.ContainerMaxDimension)
	}
	if p.ContainerMaxChildren < 0 {
		return fmt.Errorf("container max children %d is negative", p.ContainerMaxChildren)
	}
	if len(p.SignificantTags) == 0 {
		return fmt.Errorf("significant tag list is empty")
	}
	if len(p.SignificantRoles) == 0 {
		return fmt.Errorf("significant role list is empty")
	}
	if p.StaggerInterval < 0 {
		return fmt.Errorf("stagger interval %s is negative", p.StaggerInterval)
	}
	if p.DoublePressWindow <= 0 {
		return fmt.Errorf("double press window %s must be positive", p.DoublePressWindow)
	}
	if p.ToastDuration <= 0 {
		return fmt.Errorf("toast duration %s must be positive", p.ToastDuration)
	}
	return nil
}

package selection

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/logging"
)

// RuleHook lets callers override the built-in significance verdict per
// element. It receives the element and the verdict the built-in rules
// produced; its return value replaces that verdict. A hook error disables
// the hook for the rest of the classifier's lifetime.
type RuleHook func(el ElementView, builtin bool) (bool, error)

// Classifier decides whether a candidate element is meaningful enough to
// select. Rules run in fixed precedence order; the first matching rule
// decides. Not safe for concurrent use; the kernel runs on one goroutine.
type Classifier struct {
	policy     Policy
	tags       map[string]struct{}
	roles      map[string]struct{}
	containers map[string]struct{}
	hook       RuleHook
	logger     zerolog.Logger
}

// NewClassifier builds a classifier for the given policy.
func NewClassifier(ctx context.Context, policy Policy) *Classifier {
	return &Classifier{
		policy:     policy,
		tags:       stringSet(policy.SignificantTags),
		roles:      stringSet(policy.SignificantRoles),
		containers: stringSet(policy.ContainerTags),
		logger:     logging.FromContext(ctx).With().Str("component", "classifier").Logger(),
	}
}

// SetRuleHook installs a scripted override evaluated after the built-in
// rules. Passing nil removes any installed hook.
func (c *Classifier) SetRuleHook(hook RuleHook) {
	c.hook = hook
}

// Significant reports whether the element should be part of a selection.
func (c *Classifier) Significant(el ElementView) bool {
	verdict := c.builtinVerdict(el)

	if c.hook == nil {
		return verdict
	}
	override, err := c.hook(el, verdict)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("element", el.ID()).
			Msg("rule hook failed, disabling it")
		c.hook = nil
		return verdict
	}
	return override
}

func (c *Classifier) builtinVerdict(el ElementView) bool {
	bounds := el.Bounds()
	w, h := bounds.Width(), bounds.Height()

	// Too small to mean anything.
	if w < c.policy.MinDimension || h < c.policy.MinDimension {
		return false
	}

	// Interactive or semantic tag.
	if _, ok := c.tags[el.Tag()]; ok {
		return true
	}

	// Interactive or semantic ARIA role.
	if role := el.Role(); role != "" {
		if _, ok := c.roles[role]; ok {
			return true
		}
	}

	// Behaves like a link or a button.
	if el.HasClickHandler() || el.Href() != "" || el.Style("cursor") == "pointer" {
		return true
	}

	// Visually distinct, unless it is large enough to be a styled
	// container.
	if c.visuallyDistinct(el) && w < c.policy.StyledMaxDimension && h < c.policy.StyledMaxDimension {
		return true
	}

	// True text leaf.
	if strings.TrimSpace(el.Text()) != "" && el.ChildCount() == 0 {
		return true
	}

	// Large generic containers are wrappers around content, never targets
	// themselves.
	if _, ok := c.containers[el.Tag()]; ok {
		if w > c.policy.ContainerMaxDimension ||
			h > c.policy.ContainerMaxDimension ||
			el.ChildCount() > c.policy.ContainerMaxChildren {
			return false
		}
	}

	return false
}

// visuallyDistinct reports whether the element carries styling that sets it
// apart from plain flow content: a real border, rounded corners, or a
// painted background.
func (c *Classifier) visuallyDistinct(el ElementView) bool {
	if bs := el.Style("border-style"); bs != "" && bs != "none" {
		return true
	}
	if br := el.Style("border-radius"); br != "" && br != "0px" {
		return true
	}
	bg := el.Style("background-color")
	return bg != "" && bg != "transparent" && bg != "rgba(0, 0, 0, 0)"
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

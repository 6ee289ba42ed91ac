// Package config provides default configuration values for lasso.
package config

import (
	"time"

	"github.com/bnema/lasso/internal/selection"
)

// DefaultConfig returns the default configuration values for lasso. The
// selection numbers mirror the kernel's built-in policy.
func DefaultConfig() *Config {
	policy := selection.DefaultPolicy()

	return &Config{
		Selection: SelectionConfig{
			OverlapThreshold:      policy.OverlapThreshold,
			MinDimension:          policy.MinDimension,
			StyledMaxDimension:    policy.StyledMaxDimension,
			ContainerMaxDimension: policy.ContainerMaxDimension,
			ContainerMaxChildren:  policy.ContainerMaxChildren,
			ExtraTags:             []string{},
			ExtraRoles:            []string{},
			RulesScript:           "",
		},
		Input: InputConfig{
			// Alt+drag is the desktop region-select idiom and stays clear
			// of printable page shortcuts.
			TriggerKey:        "Alt",
			DoublePressWindow: policy.DoublePressWindow,
		},
		Activation: ActivationConfig{
			StaggerInterval: policy.StaggerInterval,
		},
		Feedback: FeedbackConfig{
			ToastDuration:   policy.ToastDuration,
			HighlightColor:  "#e81050",
			OverlayColor:    "rgba(232, 16, 80, 0.12)",
			CopyToClipboard: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // console or json
		},
	}
}

// SelectionPolicy maps the configuration onto a kernel policy.
func (c *Config) SelectionPolicy() selection.Policy {
	policy := selection.DefaultPolicy()

	if c.Selection.OverlapThreshold > 0 {
		policy.OverlapThreshold = c.Selection.OverlapThreshold
	}
	if c.Selection.MinDimension >= 0 {
		policy.MinDimension = c.Selection.MinDimension
	}
	if c.Selection.StyledMaxDimension > 0 {
		policy.StyledMaxDimension = c.Selection.StyledMaxDimension
	}
	if c.Selection.ContainerMaxDimension > 0 {
		policy.ContainerMaxDimension = c.Selection.ContainerMaxDimension
	}
	if c.Selection.ContainerMaxChildren >= 0 {
		policy.ContainerMaxChildren = c.Selection.ContainerMaxChildren
	}
	policy.SignificantTags = append(policy.SignificantTags, c.Selection.ExtraTags...)
	policy.SignificantRoles = append(policy.SignificantRoles, c.Selection.ExtraRoles...)

	if c.Input.DoublePressWindow > 0 {
		policy.DoublePressWindow = c.Input.DoublePressWindow
	}
	if c.Activation.StaggerInterval >= 0 {
		policy.StaggerInterval = c.Activation.StaggerInterval
	}
	if c.Feedback.ToastDuration > 0 {
		policy.ToastDuration = c.Feedback.ToastDuration
	}

	return policy
}

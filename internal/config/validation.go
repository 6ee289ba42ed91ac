// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Selection.OverlapThreshold <= 0 || config.Selection.OverlapThreshold > 1 {
		validationErrors = append(validationErrors, "selection.overlap_threshold must be in (0, 1]")
	}
	if config.Selection.MinDimension < 0 {
		validationErrors = append(validationErrors, "selection.min_dimension must be non-negative")
	}
	if config.Selection.StyledMaxDimension <= 0 {
		validationErrors = append(validationErrors, "selection.styled_max_dimension must be positive")
	}
	if config.Selection.ContainerMaxDimension <= 0 {
		validationErrors = append(validationErrors, "selection.container_max_dimension must be positive")
	}
	if config.Selection.ContainerMaxChildren < 0 {
		validationErrors = append(validationErrors, "selection.container_max_children must be non-negative")
	}
	for _, tag := range config.Selection.ExtraTags {
		if strings.TrimSpace(tag) == "" {
			validationErrors = append(validationErrors, "selection.extra_tags must not contain blank entries")
			break
		}
	}
	for _, role := range config.Selection.ExtraRoles {
		if strings.TrimSpace(role) == "" {
			validationErrors = append(validationErrors, "selection.extra_roles must not contain blank entries")
			break
		}
	}

	if strings.TrimSpace(config.Input.TriggerKey) == "" {
		validationErrors = append(validationErrors, "input.trigger_key cannot be empty")
	}
	if config.Input.DoublePressWindow <= 0 {
		validationErrors = append(validationErrors, "input.double_press_window must be positive")
	}

	if config.Activation.StaggerInterval < 0 {
		validationErrors = append(validationErrors, "activation.stagger_interval must be non-negative")
	}

	if config.Feedback.ToastDuration <= 0 {
		validationErrors = append(validationErrors, "feedback.toast_duration must be positive")
	}
	if strings.TrimSpace(config.Feedback.HighlightColor) == "" {
		validationErrors = append(validationErrors, "feedback.highlight_color cannot be empty")
	}
	if strings.TrimSpace(config.Feedback.OverlayColor) == "" {
		validationErrors = append(validationErrors, "feedback.overlay_color cannot be empty")
	}

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be 'console' or 'json' (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

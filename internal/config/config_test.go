package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lasso/internal/selection"
)

// isolate points the XDG config directory at a temp dir so tests never
// touch a real home.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", tmp)
	return filepath.Join(tmp, appName)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	configDir := isolate(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	if _, err := os.Stat(filepath.Join(configDir, "config.toml")); err != nil {
		t.Fatalf("expected starter config file: %v", err)
	}

	cfg := m.Get()
	assert.Equal(t, "Alt", cfg.Input.TriggerKey)
	assert.Equal(t, 0.5, cfg.Selection.OverlapThreshold)
	assert.Equal(t, 300*time.Millisecond, cfg.Input.DoublePressWindow)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Feedback.CopyToClipboard)
}

func TestManager_LoadReadsTOMLFile(t *testing.T) {
	configDir := isolate(t)
	writeConfig(t, configDir, `
[selection]
overlap_threshold = 0.7
extra_tags = ["article", "figure"]

[input]
trigger_key = "F4"
double_press_window = "450ms"

[logging]
level = "debug"
`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 0.7, cfg.Selection.OverlapThreshold)
	assert.Equal(t, []string{"article", "figure"}, cfg.Selection.ExtraTags)
	assert.Equal(t, "F4", cfg.Input.TriggerKey)
	assert.Equal(t, 450*time.Millisecond, cfg.Input.DoublePressWindow)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, 100*time.Millisecond, cfg.Activation.StaggerInterval)

	policy := cfg.SelectionPolicy()
	assert.Equal(t, 0.7, policy.OverlapThreshold)
	assert.Equal(t, 450*time.Millisecond, policy.DoublePressWindow)
	assert.Contains(t, policy.SignificantTags, "article")
	assert.Contains(t, policy.SignificantTags, "button")
}

func TestManager_EnvOverridesFile(t *testing.T) {
	configDir := isolate(t)
	writeConfig(t, configDir, `
[selection]
overlap_threshold = 0.7
`)
	t.Setenv("LASSO_SELECTION_OVERLAP_THRESHOLD", "0.9")
	t.Setenv("LASSO_INPUT_TRIGGER_KEY", "F9")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 0.9, cfg.Selection.OverlapThreshold)
	assert.Equal(t, "F9", cfg.Input.TriggerKey)
}

func TestManager_LoadRejectsInvalidConfig(t *testing.T) {
	configDir := isolate(t)
	writeConfig(t, configDir, `
[selection]
overlap_threshold = 1.5

[logging]
level = "verbose"
`)

	m, err := NewManager()
	require.NoError(t, err)

	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection.overlap_threshold")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestManager_ReloadSwapsConfig(t *testing.T) {
	configDir := isolate(t)
	writeConfig(t, configDir, `
[selection]
overlap_threshold = 0.3
`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())
	require.Equal(t, 0.3, m.Get().Selection.OverlapThreshold)

	writeConfig(t, configDir, `
[selection]
overlap_threshold = 0.8
`)
	require.NoError(t, m.reload())
	assert.Equal(t, 0.8, m.Get().Selection.OverlapThreshold)

	// A broken rewrite keeps the last good config.
	writeConfig(t, configDir, `
[selection]
overlap_threshold = 1.5
`)
	require.Error(t, m.reload())
	assert.Equal(t, 0.8, m.Get().Selection.OverlapThreshold)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty trigger key", func(c *Config) { c.Input.TriggerKey = " " }, "input.trigger_key"},
		{"zero double press window", func(c *Config) { c.Input.DoublePressWindow = 0 }, "input.double_press_window"},
		{"negative stagger", func(c *Config) { c.Activation.StaggerInterval = -time.Second }, "activation.stagger_interval"},
		{"zero toast duration", func(c *Config) { c.Feedback.ToastDuration = 0 }, "feedback.toast_duration"},
		{"blank extra tag", func(c *Config) { c.Selection.ExtraTags = []string{"ok", " "} }, "selection.extra_tags"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, validateConfig(DefaultConfig()))
}

func TestDefaultSelectionPolicyRoundTrip(t *testing.T) {
	policy := DefaultConfig().SelectionPolicy()
	require.NoError(t, policy.Validate())
	assert.Equal(t, selection.DefaultPolicy(), policy)
}

func TestResolveRulesScript(t *testing.T) {
	configDir := isolate(t)

	path, err := ResolveRulesScript("")
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = ResolveRulesScript("/etc/lasso/rules.js")
	require.NoError(t, err)
	assert.Equal(t, "/etc/lasso/rules.js", path)

	path, err = ResolveRulesScript("rules.js")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "rules.js"), path)
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "Lasso Configuration")
	assert.Contains(t, s, "selection")
	assert.Contains(t, s, "trigger_key")
}

// Package config provides configuration management for lasso with Viper
// integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for lasso.
type Config struct {
	Selection  SelectionConfig  `mapstructure:"selection" yaml:"selection" json:"selection"`
	Input      InputConfig      `mapstructure:"input" yaml:"input" json:"input"`
	Activation ActivationConfig `mapstructure:"activation" yaml:"activation" json:"activation"`
	Feedback   FeedbackConfig   `mapstructure:"feedback" yaml:"feedback" json:"feedback"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// SelectionConfig tunes the selection kernel.
type SelectionConfig struct {
	// OverlapThreshold is the fraction of a candidate that must lie inside
	// the drawn rectangle, exclusive.
	OverlapThreshold float64 `mapstructure:"overlap_threshold" yaml:"overlap_threshold" json:"overlap_threshold"`

	// MinDimension rejects candidates smaller than this many pixels in
	// either direction.
	MinDimension float64 `mapstructure:"min_dimension" yaml:"min_dimension" json:"min_dimension"`

	// StyledMaxDimension caps elements accepted purely for carrying a
	// distinguishing style.
	StyledMaxDimension float64 `mapstructure:"styled_max_dimension" yaml:"styled_max_dimension" json:"styled_max_dimension"`

	// ContainerMaxDimension and ContainerMaxChildren bound the generic
	// container reject rule.
	ContainerMaxDimension float64 `mapstructure:"container_max_dimension" yaml:"container_max_dimension" json:"container_max_dimension"`
	ContainerMaxChildren  int     `mapstructure:"container_max_children" yaml:"container_max_children" json:"container_max_children"`

	// ExtraTags and ExtraRoles extend the built-in accept allow-lists.
	ExtraTags  []string `mapstructure:"extra_tags" yaml:"extra_tags" json:"extra_tags"`
	ExtraRoles []string `mapstructure:"extra_roles" yaml:"extra_roles" json:"extra_roles"`

	// RulesScript points at an optional JavaScript rule file that can
	// override significance verdicts. Empty disables the hook.
	RulesScript string `mapstructure:"rules_script" yaml:"rules_script" json:"rules_script"`
}

// InputConfig holds trigger gesture configuration.
type InputConfig struct {
	// TriggerKey is matched against KeyboardEvent.key values from the page.
	TriggerKey string `mapstructure:"trigger_key" yaml:"trigger_key" json:"trigger_key"`

	// DoublePressWindow bounds the double-tap clear gesture.
	DoublePressWindow time.Duration `mapstructure:"double_press_window" yaml:"double_press_window" json:"double_press_window"`
}

// ActivationConfig holds batch activation configuration.
type ActivationConfig struct {
	// StaggerInterval spaces batch activations apart.
	StaggerInterval time.Duration `mapstructure:"stagger_interval" yaml:"stagger_interval" json:"stagger_interval"`
}

// FeedbackConfig holds visual feedback and clipboard configuration.
type FeedbackConfig struct {
	ToastDuration   time.Duration `mapstructure:"toast_duration" yaml:"toast_duration" json:"toast_duration"`
	HighlightColor  string        `mapstructure:"highlight_color" yaml:"highlight_color" json:"highlight_color"`
	OverlayColor    string        `mapstructure:"overlay_color" yaml:"overlay_color" json:"overlay_color"`
	CopyToClipboard bool          `mapstructure:"copy_to_clipboard" yaml:"copy_to_clipboard" json:"copy_to_clipboard"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Finds config.toml, config.yaml, config.json under the config dir.
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("LASSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"selection.overlap_threshold":       "SELECTION_OVERLAP_THRESHOLD",
		"selection.min_dimension":           "SELECTION_MIN_DIMENSION",
		"selection.styled_max_dimension":    "SELECTION_STYLED_MAX_DIMENSION",
		"selection.container_max_dimension": "SELECTION_CONTAINER_MAX_DIMENSION",
		"selection.container_max_children":  "SELECTION_CONTAINER_MAX_CHILDREN",
		"selection.rules_script":            "SELECTION_RULES_SCRIPT",
		"input.trigger_key":                 "INPUT_TRIGGER_KEY",
		"input.double_press_window":         "INPUT_DOUBLE_PRESS_WINDOW",
		"activation.stagger_interval":       "ACTIVATION_STAGGER_INTERVAL",
		"feedback.toast_duration":           "FEEDBACK_TOAST_DURATION",
		"feedback.highlight_color":          "FEEDBACK_HIGHLIGHT_COLOR",
		"feedback.overlay_color":            "FEEDBACK_OVERLAY_COLOR",
		"feedback.copy_to_clipboard":        "FEEDBACK_COPY_TO_CLIPBOARD",
		"logging.level":                     "LOGGING_LEVEL",
		"logging.format":                    "LOGGING_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "LASSO_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes and validates the current viper state.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads
// automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback to run after each successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("selection.overlap_threshold", defaults.Selection.OverlapThreshold)
	m.viper.SetDefault("selection.min_dimension", defaults.Selection.MinDimension)
	m.viper.SetDefault("selection.styled_max_dimension", defaults.Selection.StyledMaxDimension)
	m.viper.SetDefault("selection.container_max_dimension", defaults.Selection.ContainerMaxDimension)
	m.viper.SetDefault("selection.container_max_children", defaults.Selection.ContainerMaxChildren)
	m.viper.SetDefault("selection.extra_tags", defaults.Selection.ExtraTags)
	m.viper.SetDefault("selection.extra_roles", defaults.Selection.ExtraRoles)
	m.viper.SetDefault("selection.rules_script", defaults.Selection.RulesScript)

	m.viper.SetDefault("input.trigger_key", defaults.Input.TriggerKey)
	m.viper.SetDefault("input.double_press_window", defaults.Input.DoublePressWindow)

	m.viper.SetDefault("activation.stagger_interval", defaults.Activation.StaggerInterval)

	m.viper.SetDefault("feedback.toast_duration", defaults.Feedback.ToastDuration)
	m.viper.SetDefault("feedback.highlight_color", defaults.Feedback.HighlightColor)
	m.viper.SetDefault("feedback.overlay_color", defaults.Feedback.OverlayColor)
	m.viper.SetDefault("feedback.copy_to_clipboard", defaults.Feedback.CopyToClipboard)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// createDefaultConfig writes the defaults out as a starter config file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &exists) {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)
	return nil
}

// ConfigFile returns the path of the configuration file in use.
func (m *Manager) ConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration, defaults when uninitialized.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// Watch starts watching the global configuration for changes.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnChange registers a reload callback on the global manager.
func OnChange(callback func(*Config)) {
	if globalManager != nil {
		globalManager.OnConfigChange(callback)
	}
}

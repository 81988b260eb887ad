package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/datasource"
	"github.com/zhubert/combobox/internal/errors"
)

// Defaults applied when a field is unset
const (
	DefaultLabel       = "State"
	DefaultPlaceholder = "Choose a state"
	DefaultValuePath   = "id"
	DefaultLabelPath   = "name"
	DefaultMaxVisible  = 8
	DefaultWidth       = 40

	// MaxRecent is how many recently selected values are remembered
	MaxRecent = 10
)

// Config holds the demo configuration
type Config struct {
	DataFile    string `json:"data_file,omitempty"`   // YAML list of records; empty uses the embedded states
	Label       string `json:"label,omitempty"`       // Caption above the field
	Placeholder string `json:"placeholder,omitempty"` // Text shown while the field is empty
	ValuePath   string `json:"value_path,omitempty"`  // Dotted path to the value bound by the widget
	LabelPath   string `json:"label_path,omitempty"`  // Dotted path to the option label
	TextPath    string `json:"text_path,omitempty"`   // Dotted path to the text written on select (defaults to label)
	FilterMode  string `json:"filter_mode,omitempty"` // "prefix" or "fuzzy"
	Value       string `json:"value,omitempty"`       // Initial value

	ToggleDisabled bool   `json:"toggle_disabled,omitempty"`
	MaxVisible     int    `json:"max_visible,omitempty"`
	Width          int    `json:"width,omitempty"`
	Theme          string `json:"theme,omitempty"` // UI theme name (e.g., "dark-purple", "nord")

	// RememberSelection starts the demo on the most recent selection
	RememberSelection bool     `json:"remember_selection,omitempty"`
	Recent            []string `json:"recent,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".combobox"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, or returns a new one
// if it doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("home directory", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns a new one bound to path if
// the file doesn't exist
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Recent:   []string{},
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Must happen before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized ensures slices are initialized (not nil).
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization from LoadFrom().
func (c *Config) ensureInitialized() {
	if c.Recent == nil {
		c.Recent = []string{}
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, p := range map[string]string{
		"value_path": c.ValuePath,
		"label_path": c.LabelPath,
		"text_path":  c.TextPath,
	} {
		if p == "" {
			continue
		}
		if _, err := combobox.Path(p); err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("%s: %v", name, err))
		}
	}

	if _, err := datasource.ParseMode(c.FilterMode); err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	if c.MaxVisible < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("max_visible must not be negative, got %d", c.MaxVisible))
	}
	if c.Width < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("width must not be negative, got %d", c.Width))
	}

	seen := make(map[string]bool)
	for _, v := range c.Recent {
		if v == "" {
			return errors.ConfigInvalid("empty recent value found")
		}
		if seen[v] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate recent value: %s", v))
		}
		seen[v] = true
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return errors.ConfigSaveFailed("(unset)", fmt.Errorf("config has no file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config loads from and saves to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetLabel returns the field caption, falling back to the default
func (c *Config) GetLabel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Label == "" {
		return DefaultLabel
	}
	return c.Label
}

// GetPlaceholder returns the placeholder, falling back to the default
func (c *Config) GetPlaceholder() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Placeholder == "" {
		return DefaultPlaceholder
	}
	return c.Placeholder
}

// GetPaths returns the value, label and text field paths. An empty text
// path means the label is used.
func (c *Config) GetPaths() (value, label, text string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, label = c.ValuePath, c.LabelPath
	if value == "" {
		value = DefaultValuePath
	}
	if label == "" {
		label = DefaultLabelPath
	}
	return value, label, c.TextPath
}

// GetFilterMode returns the parsed filter mode. Validate has already
// rejected unknown modes.
func (c *Config) GetFilterMode() datasource.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mode, err := datasource.ParseMode(c.FilterMode)
	if err != nil {
		return datasource.ModePrefix
	}
	return mode
}

// GetMaxVisible returns the number of visible options, falling back to the default
func (c *Config) GetMaxVisible() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.MaxVisible <= 0 {
		return DefaultMaxVisible
	}
	return c.MaxVisible
}

// GetWidth returns the widget width, falling back to the default
func (c *Config) GetWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Width <= 0 {
		return DefaultWidth
	}
	return c.Width
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// InitialValue returns the value the widget starts with: the configured
// value, or the most recent selection when RememberSelection is on.
func (c *Config) InitialValue() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Value != "" {
		return c.Value
	}
	if c.RememberSelection && len(c.Recent) > 0 {
		return c.Recent[0]
	}
	return ""
}

// AddRecent moves value to the front of the recent list, dropping the
// oldest entry past MaxRecent. Returns false for an empty value.
func (c *Config) AddRecent(value string) bool {
	if value == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	recent := make([]string, 0, MaxRecent)
	recent = append(recent, value)
	for _, v := range c.Recent {
		if v != value && len(recent) < MaxRecent {
			recent = append(recent, v)
		}
	}
	c.Recent = recent
	return true
}

// GetRecent returns a copy of the recent values, newest first
func (c *Config) GetRecent() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recent := make([]string, len(c.Recent))
	copy(recent, c.Recent)
	return recent
}

// ClearRecent forgets all recent values
func (c *Config) ClearRecent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Recent = []string{}
}

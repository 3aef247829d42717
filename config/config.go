// Package config loads the YAML application configuration: which font files
// back which families, preview resolution, output naming and trace levels.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
)

// Common errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidValue         = errors.New("invalid value")
)

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Err: err}
}

// FontConfig binds a family name to its font files.
type FontConfig struct {
	// Family is the name worksheets refer to, e.g. "Lesson One".
	Family string `yaml:"family"`

	// Regular is the path of the regular face, or "builtin:go-regular".
	Regular string `yaml:"regular"`

	// Bold is the optional path of the bold face used for titles.
	Bold string `yaml:"bold,omitempty"`
}

// PreviewConfig controls the PNG preview.
type PreviewConfig struct {
	DPI float64 `yaml:"dpi"`
}

// SetDefaults sets default values for preview configuration.
func (c *PreviewConfig) SetDefaults() {
	if c.DPI == 0 {
		c.DPI = 144
	}
}

// OutputConfig controls generated file names and document metadata.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
	Creator string `yaml:"creator"`
}

// SetDefaults sets default values for output configuration.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Prefix == "" {
		c.Prefix = "POJ_LiansipChoa"
	}
	if c.Creator == "" {
		c.Creator = "LiansipChoa"
	}
}

// LoggingConfig sets trace levels, per trace key or for all keys.
type LoggingConfig struct {
	Level  string            `yaml:"level"`
	Tracer map[string]string `yaml:"tracers,omitempty"`
}

// SetDefaults sets default values for logging configuration.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "Error"
	}
}

// LevelFor returns the level configured for a trace key.
func (c *LoggingConfig) LevelFor(key string) string {
	if lvl, ok := c.Tracer[key]; ok && lvl != "" {
		return lvl
	}
	return c.Level
}

// AppConfig contains the complete application configuration.
type AppConfig struct {
	Fonts   []FontConfig  `yaml:"fonts"`
	Preview PreviewConfig `yaml:"preview"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// baseDir resolves relative font paths; it is the config file's directory.
	baseDir string
}

// SetDefaults fills every unset field.
func (c *AppConfig) SetDefaults() {
	c.Preview.SetDefaults()
	c.Output.SetDefaults()
	c.Logging.SetDefaults()
}

var traceLevels = []string{"debug", "info", "error"}

// Validate checks the configuration after defaults have been applied.
func (c *AppConfig) Validate() error {
	seen := map[string]bool{}
	for i, f := range c.Fonts {
		field := fmt.Sprintf("fonts[%d]", i)
		if strings.TrimSpace(f.Family) == "" {
			return NewConfigError(field+".family", "required field is missing", ErrMissingRequiredField)
		}
		if f.Regular == "" {
			return NewConfigError(field+".regular", "required field is missing", ErrMissingRequiredField)
		}
		if seen[f.Family] {
			return NewConfigError(field+".family", fmt.Sprintf("family %q declared twice", f.Family), ErrInvalidValue)
		}
		seen[f.Family] = true
	}
	if c.Preview.DPI < 0 {
		return NewConfigError("preview.dpi", "must be positive", ErrInvalidValue)
	}
	if !validLevel(c.Logging.Level) {
		return NewConfigError("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level), ErrInvalidValue)
	}
	for key, lvl := range c.Logging.Tracer {
		if !validLevel(lvl) {
			return NewConfigError("logging.tracers."+key, fmt.Sprintf("unknown level %q", lvl), ErrInvalidValue)
		}
	}
	return nil
}

func validLevel(lvl string) bool {
	lvl = strings.ToLower(lvl)
	for _, l := range traceLevels {
		if lvl == l {
			return true
		}
	}
	return false
}

// Default returns a configuration with all defaults set and no fonts.
func Default() *AppConfig {
	c := &AppConfig{baseDir: "."}
	c.SetDefaults()
	return c
}

// LoadAppConfig loads the application configuration from a YAML file.
// Relative font paths are resolved against the file's directory.
func LoadAppConfig(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	c, err := ParseAppConfig(data)
	if err != nil {
		return nil, err
	}
	c.baseDir = filepath.Dir(filename)
	return c, nil
}

// ParseAppConfig parses, defaults and validates YAML configuration data.
func ParseAppConfig(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.baseDir = "."
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Apply registers all configured fonts in reg.
func (c *AppConfig) Apply(reg *fonts.Registry) error {
	for i, f := range c.Fonts {
		if err := reg.RegisterFile(f.Family, false, c.resolve(f.Regular)); err != nil {
			return NewConfigError(fmt.Sprintf("fonts[%d].regular", i), err.Error(), err)
		}
		if f.Bold == "" {
			continue
		}
		if err := reg.RegisterFile(f.Family, true, c.resolve(f.Bold)); err != nil {
			return NewConfigError(fmt.Sprintf("fonts[%d].bold", i), err.Error(), err)
		}
	}
	return nil
}

func (c *AppConfig) resolve(path string) string {
	if strings.HasPrefix(path, "builtin:") || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config is the top-level configuration for vapi
type Config struct {
	// Input lists the files to parse when none are given on the command line
	Input InputConfig `json:"input,omitempty"`

	// Parser contains grammar engine options
	Parser ParserConfig `json:"parser,omitempty"`

	// Output contains report options
	Output OutputConfig `json:"output,omitempty"`

	// Lint contains lint rule configuration
	Lint LintConfig `json:"lint,omitempty"`
}

// InputConfig selects the VHDL files to parse
type InputConfig struct {
	// Files is a list of paths or glob patterns (** is recursive)
	Files []string `json:"files,omitempty"`

	// Exclude is a list of glob patterns removed from the expanded Files
	Exclude []string `json:"exclude,omitempty"`
}

// ParserConfig contains grammar engine options
type ParserConfig struct {
	// TabSize is the tab stop width used for diagnostic columns
	TabSize int `json:"tabSize,omitempty" validate:"gte=1,lte=64"`

	// ReportLineNumbers includes line:column in diagnostic headers
	ReportLineNumbers *bool `json:"reportLineNumbers,omitempty"`

	// Trace logs every grammar rule attempt at debug level
	Trace bool `json:"trace,omitempty"`
}

// OutputConfig contains report options
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `json:"format,omitempty" validate:"oneof=text json"`
}

// LintConfig contains lint rule configuration
type LintConfig struct {
	// Enabled runs the lint policies after a successful parse
	Enabled bool `json:"enabled,omitempty"`

	// Rules maps rule names to severity: "off", "info", "warning", "error"
	Rules map[string]string `json:"rules,omitempty" validate:"dive,keys,required,endkeys,oneof=off info warning error"`
}

const (
	DefaultInput   = "input.txt"
	DefaultTabSize = 8
	FormatText     = "text"
	FormatJSON     = "json"
)

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Files:   []string{DefaultInput},
			Exclude: []string{},
		},
		Parser: ParserConfig{
			TabSize:           DefaultTabSize,
			ReportLineNumbers: boolPtr(true),
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Lint: LintConfig{
			Rules: map[string]string{},
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. <dir>/vapi.json (dir defaults to the current working directory)
//  2. <dir>/.vapi.json
//  3. ~/.config/vapi/config.json
//
// Returns DefaultConfig if no config file is found
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir, _ = os.Getwd()
	}

	searchPaths := []string{
		filepath.Join(dir, "vapi.json"),
		filepath.Join(dir, ".vapi.json"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "vapi", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	// No config found, return defaults
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if len(c.Input.Files) == 0 {
		c.Input.Files = []string{DefaultInput}
	}
	if c.Parser.TabSize <= 0 {
		c.Parser.TabSize = DefaultTabSize
	}
	if c.Parser.ReportLineNumbers == nil {
		c.Parser.ReportLineNumbers = boolPtr(true)
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Lint.Rules == nil {
		c.Lint.Rules = make(map[string]string)
	}
}

// Validate checks enumerated settings and ranges
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Format":
		return fmt.Sprintf("unknown output format %q", fe.Value())
	case fe.Field() == "TabSize":
		return fmt.Sprintf("tab size %v out of range 1..64", fe.Value())
	case strings.HasPrefix(fe.Field(), "Rules["):
		rule := strings.TrimSuffix(strings.TrimPrefix(fe.Field(), "Rules["), "]")
		if fe.Tag() == "required" {
			return "empty rule name in lint.rules"
		}
		return fmt.Sprintf("unknown severity %q for rule %s", fe.Value(), rule)
	}
	return fmt.Sprintf("invalid %s: failed %s", fe.Namespace(), fe.Tag())
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ShowLineNumbers reports whether diagnostics carry line:column
func (c *Config) ShowLineNumbers() bool {
	return c.Parser.ReportLineNumbers == nil || *c.Parser.ReportLineNumbers
}

// GetRuleSeverity returns the severity for a rule, or the default if not configured
func (c *Config) GetRuleSeverity(rule string, defaultSeverity string) string {
	if severity, ok := c.Lint.Rules[rule]; ok {
		return severity
	}
	return defaultSeverity
}

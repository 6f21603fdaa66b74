package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/strutbar"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "5s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

const (
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// ModuleConfig describes one module on the bar. Which fields apply depends
// on the type: label uses text, clock uses format, exec uses command and
// interval, image uses path.
type ModuleConfig struct {
	Type       string   `yaml:"type"`
	Align      string   `yaml:"align,omitempty"`
	Text       string   `yaml:"text,omitempty"`
	Format     string   `yaml:"format,omitempty"`
	Command    string   `yaml:"command,omitempty"`
	Path       string   `yaml:"path,omitempty"`
	Interval   Duration `yaml:"interval,omitempty"`
	Background string   `yaml:"background,omitempty"`
	Foreground string   `yaml:"foreground,omitempty"`
	FixedWidth int      `yaml:"fixed_width,omitempty"`
	MinWidth   int      `yaml:"min_width,omitempty"`
	MaxWidth   int      `yaml:"max_width,omitempty"`
}

// Config holds the bar configuration.
type Config struct {
	Name            string         `yaml:"name"`
	Height          int            `yaml:"height"`
	Position        string         `yaml:"position"`
	Output          string         `yaml:"output,omitempty"`
	Background      string         `yaml:"background"`
	Foreground      string         `yaml:"foreground"`
	BackgroundImage string         `yaml:"background_image,omitempty"`
	Font            string         `yaml:"font,omitempty"`
	FontSize        float64        `yaml:"font_size"`
	TextYOffset     int            `yaml:"text_y_offset,omitempty"`
	Precedence      []string       `yaml:"precedence,omitempty"`
	LogLevel        string         `yaml:"log_level"`
	Modules         []ModuleConfig `yaml:"modules"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "strutbar",
		Height:     30,
		Position:   PositionTop,
		Background: "#1d1f21",
		Foreground: "#c5c8c6",
		FontSize:   12,
		LogLevel:   "info",
		Modules: []ModuleConfig{
			{Type: "clock", Align: "center"},
		},
	}
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "strutbar", "config.yaml"), nil
}

// LoadConfig reads the configuration at path, applying defaults for absent
// keys. A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read: %w", path, err)
		}
		if err := decodeStrictYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidationError reports an invalid configuration value with its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Path: "name", Err: fmt.Errorf("name is required")}
	}
	if c.Height <= 0 {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be > 0")}
	}
	switch c.Position {
	case PositionTop, PositionBottom:
	default:
		return &ValidationError{Path: "position", Err: fmt.Errorf("position must be one of: top, bottom")}
	}
	if _, err := strutbar.ParseColor(c.Background); err != nil {
		return &ValidationError{Path: "background", Err: err}
	}
	if _, err := strutbar.ParseColor(c.Foreground); err != nil {
		return &ValidationError{Path: "foreground", Err: err}
	}
	if c.FontSize <= 0 {
		return &ValidationError{Path: "font_size", Err: fmt.Errorf("font_size must be > 0")}
	}
	if _, err := c.precedence(); err != nil {
		return &ValidationError{Path: "precedence", Err: err}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	for i, m := range c.Modules {
		if err := validateModule(&m); err != nil {
			return &ValidationError{Path: fmt.Sprintf("modules[%d]", i), Err: err}
		}
	}

	return nil
}

// validateModule checks if a module configuration is valid.
func validateModule(m *ModuleConfig) error {
	switch m.Type {
	case "clock", "label", "exec", "image":
	default:
		return fmt.Errorf("type must be one of: clock, label, exec, image")
	}

	if m.Align != "" {
		if _, err := parseAlign(m.Align); err != nil {
			return err
		}
	}
	if m.Background != "" {
		if _, err := strutbar.ParseColor(m.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	if m.Foreground != "" {
		if _, err := strutbar.ParseColor(m.Foreground); err != nil {
			return fmt.Errorf("foreground: %w", err)
		}
	}
	if m.Interval < 0 {
		return fmt.Errorf("interval must be >= 0")
	}
	if m.FixedWidth < 0 || m.MinWidth < 0 || m.MaxWidth < 0 {
		return fmt.Errorf("widths must be >= 0")
	}
	if m.MinWidth > 0 && m.MaxWidth > 0 && m.MinWidth > m.MaxWidth {
		return fmt.Errorf("min_width must be <= max_width")
	}

	switch m.Type {
	case "label":
		if m.Text == "" {
			return fmt.Errorf("label requires text")
		}
	case "exec":
		if strings.TrimSpace(m.Command) == "" {
			return fmt.Errorf("exec requires command")
		}
	case "image":
		if m.Path == "" {
			return fmt.Errorf("image requires path")
		}
	}

	return nil
}

// builder translates the configuration into a bar builder.
func (c *Config) builder(logger *slog.Logger) (*strutbar.BarBuilder, error) {
	bg, err := strutbar.ParseColor(c.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := strutbar.ParseColor(c.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	prec, err := c.precedence()
	if err != nil {
		return nil, fmt.Errorf("precedence: %w", err)
	}

	b := strutbar.NewBarBuilder().
		Name(c.Name).
		Height(c.Height).
		BackgroundColor(bg).
		ForegroundColor(fg).
		FontSize(c.FontSize).
		TextYOffset(c.TextYOffset).
		Precedence(prec).
		Logger(logger)
	if c.Font != "" {
		b = b.Font(c.Font, c.FontSize)
	}
	if c.Output != "" {
		b = b.Output(c.Output)
	}
	if c.Position == PositionBottom {
		b = b.Bottom()
	}
	if c.BackgroundImage != "" {
		img, err := strutbar.LoadImageFile(c.BackgroundImage)
		if err != nil {
			return nil, fmt.Errorf("background_image: %w", err)
		}
		b = b.BackgroundImage(img)
	}
	return b, nil
}

// precedence resolves the configured group order, defaulting when unset.
func (c *Config) precedence() (strutbar.Precedence, error) {
	if len(c.Precedence) == 0 {
		return strutbar.DefaultPrecedence, nil
	}
	if len(c.Precedence) != 3 {
		return strutbar.Precedence{}, fmt.Errorf("precedence must list all three groups")
	}
	var p strutbar.Precedence
	seen := make(map[strutbar.Alignment]bool)
	for i, name := range c.Precedence {
		if name == "" {
			return strutbar.Precedence{}, fmt.Errorf("precedence contains an empty group name")
		}
		a, err := parseAlign(name)
		if err != nil {
			return strutbar.Precedence{}, err
		}
		if seen[a] {
			return strutbar.Precedence{}, fmt.Errorf("group %q listed twice", name)
		}
		seen[a] = true
		p[i] = a
	}
	return p, nil
}

func parseAlign(s string) (strutbar.Alignment, error) {
	switch strings.ToLower(s) {
	case "", "center":
		return strutbar.AlignCenter, nil
	case "left":
		return strutbar.AlignLeft, nil
	case "right":
		return strutbar.AlignRight, nil
	default:
		return strutbar.AlignCenter, fmt.Errorf("align must be one of: left, center, right")
	}
}

func (c *Config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// width translates the configured width limits for a module.
func (m *ModuleConfig) width() strutbar.Width {
	return strutbar.Width{
		Fixed: m.FixedWidth,
		Min:   m.MinWidth,
		Max:   m.MaxWidth,
	}
}

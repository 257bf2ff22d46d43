package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/cookiecutter/internal/region"
	"github.com/example/cookiecutter/internal/theme"
)

// Crop holds the selection policy.
type Crop struct {
	DefaultSize     int
	MinSize         int
	MaxSize         int
	Step            int
	HandleThreshold float64
	Modifiers       bool
}

// Limits returns the region size policy.
func (c Crop) Limits() region.Limits {
	return region.Limits{
		DefaultSize: c.DefaultSize,
		MinSize:     c.MinSize,
		MaxSize:     c.MaxSize,
		Step:        c.Step,
	}
}

// Window holds the initial window geometry.
type Window struct {
	Width       int
	Height      int
	PreviewSize int
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	Font     string
	FontSize float64
	Crop     Crop
	Window   Window
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// FontBuiltin selects the embedded Go Regular face.
const FontBuiltin = "builtin"

// New creates a new Config with defaults.
func New() *Config {
	l := region.DefaultLimits()
	return &Config{
		Font:     FontBuiltin,
		FontSize: 16,
		Crop: Crop{
			DefaultSize:     l.DefaultSize,
			MinSize:         l.MinSize,
			MaxSize:         l.MaxSize,
			Step:            l.Step,
			HandleThreshold: 24,
			Modifiers:       true,
		},
		Window: Window{Width: 1280, Height: 900, PreviewSize: 256},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	if err := c.Crop.Limits().Validate(); err != nil {
		return fmt.Errorf("[crop]: %w", err)
	}
	if c.Crop.HandleThreshold <= 0 {
		return fmt.Errorf("[crop]: handle_threshold must be positive")
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("[window]: size must be positive")
	}
	if c.Window.PreviewSize < 0 {
		return fmt.Errorf("[window]: preview_size must not be negative")
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive")
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", c.Font)
	}
	fmt.Fprintf(&sb, "font_size = %s\n", strconv.FormatFloat(c.FontSize, 'g', -1, 64))
	sb.WriteString("\n")

	sb.WriteString("[crop]\n")
	fmt.Fprintf(&sb, "default_size = %d\n", c.Crop.DefaultSize)
	fmt.Fprintf(&sb, "min_size = %d\n", c.Crop.MinSize)
	fmt.Fprintf(&sb, "max_size = %d\n", c.Crop.MaxSize)
	fmt.Fprintf(&sb, "step = %d\n", c.Crop.Step)
	fmt.Fprintf(&sb, "handle_threshold = %s\n", strconv.FormatFloat(c.Crop.HandleThreshold, 'g', -1, 64))
	fmt.Fprintf(&sb, "modifiers = %v\n", c.Crop.Modifiers)
	sb.WriteString("\n")

	sb.WriteString("[window]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Window.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Window.Height)
	fmt.Fprintf(&sb, "preview_size = %d\n", c.Window.PreviewSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

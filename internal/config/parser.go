package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/cookiecutter/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			if err = setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		case currentSection == "crop":
			err = setCropField(&cfg.Crop, key, value)
		case currentSection == "window":
			err = setWindowField(&cfg.Window, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKV accepts key = value and key: value. Surrounding quotes are removed.
func splitKV(line string) (string, string, bool) {
	var key, value string
	var ok bool
	if strings.Contains(line, "=") {
		key, value, ok = strings.Cut(line, "=")
	} else {
		key, value, ok = strings.Cut(line, ":")
	}
	if !ok {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(key), value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "font":
		cfg.Font = value
	case "font_size":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		cfg.FontSize = f
	}
	return nil
}

func setCropField(c *Crop, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "default_size":
		c.DefaultSize, err = parseInt(key, value)
	case "min_size":
		c.MinSize, err = parseInt(key, value)
	case "max_size":
		c.MaxSize, err = parseInt(key, value)
	case "step":
		c.Step, err = parseInt(key, value)
	case "handle_threshold":
		c.HandleThreshold, err = parseFloat(key, value)
	case "modifiers":
		c.Modifiers, err = parseBool(key, value)
	}
	return err
}

func setWindowField(w *Window, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "width":
		w.Width, err = parseInt(key, value)
	case "height":
		w.Height, err = parseInt(key, value)
	case "preview_size":
		w.PreviewSize, err = parseInt(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/crops
font = "/usr/share/fonts/Custom.ttf"
font_size: 20

[crop]
default_size = 300
min_size = 48
max_size = 1024
step = 8
handle_threshold = 30
modifiers = false

[window]
width = 1024
height = 768
preview_size = 200

[notify]
save = true
copy = false

[theme.my_custom_theme]
Background = #111111
Border: #FF000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/crops" {
		t.Errorf("Expected save_dir '/tmp/crops', got '%s'", cfg.SaveDir)
	}
	if cfg.Font != "/usr/share/fonts/Custom.ttf" {
		t.Errorf("font: got %q", cfg.Font)
	}
	if cfg.FontSize != 20 {
		t.Errorf("font_size: got %v", cfg.FontSize)
	}
	wantCrop := Crop{DefaultSize: 300, MinSize: 48, MaxSize: 1024, Step: 8, HandleThreshold: 30, Modifiers: false}
	if cfg.Crop != wantCrop {
		t.Errorf("crop: got %+v, want %+v", cfg.Crop, wantCrop)
	}
	if cfg.Window != (Window{Width: 1024, Height: 768, PreviewSize: 200}) {
		t.Errorf("window: got %+v", cfg.Window)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy {
		t.Errorf("notify: got %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Border.A != 0x80 {
		t.Errorf("Unexpected Border alpha: %+v", th.Border)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	l := cfg.Crop.Limits()
	if l.DefaultSize != 256 || l.MinSize != 32 || l.MaxSize != 2048 || l.Step != 16 {
		t.Errorf("limits: got %+v", l)
	}
	if cfg.Crop.HandleThreshold != 24 || !cfg.Crop.Modifiers {
		t.Errorf("crop: got %+v", cfg.Crop)
	}
	if cfg.Font != FontBuiltin {
		t.Errorf("font: got %q", cfg.Font)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crop int", "[crop]\nstep = big\n", "[crop]"},
		{"window int", "[window]\nwidth = 1.5\n", "[window]"},
		{"notify bool", "[notify]\nsave = maybe\n", "[notify]"},
		{"theme color", "[theme.x]\nBorder = green\n", "[theme.x]"},
		{"root float", "font_size = huge\n", "root section"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min below one", func(c *Config) { c.Crop.MinSize = 0 }},
		{"max below min", func(c *Config) { c.Crop.MaxSize = 16 }},
		{"zero step", func(c *Config) { c.Crop.Step = 0 }},
		{"default below min", func(c *Config) { c.Crop.DefaultSize = 8 }},
		{"default above max", func(c *Config) { c.Crop.DefaultSize = 4096 }},
		{"threshold", func(c *Config) { c.Crop.HandleThreshold = 0 }},
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"font size", func(c *Config) { c.FontSize = -1 }},
	}
	for _, tt := range tests {
		cfg := New()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/crops

[crop]
min_size = 64
modifiers = false

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Dim = #00000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Font != cfg2.Font {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Crop != cfg2.Crop || cfg.Window != cfg2.Window || cfg.Notify != cfg2.Notify {
		t.Errorf("section mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "config.rc")
	if err := os.WriteFile(rc, []byte("theme = light\nsave_dir = /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte(EnvFont+"=/from/dotenv.ttf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Restore whatever the dotenv file sets once the test ends.
	t.Setenv(EnvFont, "")
	os.Unsetenv(EnvFont)

	env := map[string]string{EnvTheme: "high-contrast", EnvSaveDir: ""}
	l := NewLoader("v1.0.0", rc)
	l.EnvFile = envFile
	l.LookupEnv = func(k string) (string, bool) {
		if v, ok := env[k]; ok {
			return v, true
		}
		return os.LookupEnv(k)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "high-contrast" {
		t.Errorf("theme: got %q", cfg.Theme)
	}
	if cfg.SaveDir != "/from/file" {
		t.Errorf("empty env value must not override: got %q", cfg.SaveDir)
	}
	if cfg.Font != "/from/dotenv.ttf" {
		t.Errorf("font: got %q", cfg.Font)
	}
}

func TestLoaderMissingFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader("v1.0.0", filepath.Join(dir, "absent.rc"))
	l.EnvFile = filepath.Join(dir, "absent.env")
	if _, err := l.Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing -config file should fail, got %v", err)
	}

	t.Setenv("HOME", dir)
	l = NewLoader("v1.0.0", "")
	l.EnvFile = filepath.Join(dir, "absent.env")
	l.LookupEnv = func(string) (string, bool) { return "", false }
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("missing optional files should not fail: %v", err)
	}
	if cfg.Crop.DefaultSize != 256 {
		t.Errorf("expected defaults, got %+v", cfg.Crop)
	}
}

func TestLoaderRejectsInvalidLimits(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "config.rc")
	if err := os.WriteFile(rc, []byte("[crop]\nmin_size = 4096\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("v1.0.0", rc)
	l.EnvFile = ""
	if _, err := l.Load(); err == nil || !strings.Contains(err.Error(), "[crop]") {
		t.Fatalf("expected a [crop] validation error, got %v", err)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/cookiecutter/internal/appstate"
	"github.com/example/cookiecutter/internal/clipboard"
	"github.com/example/cookiecutter/internal/config"
	"github.com/example/cookiecutter/internal/display"
	"github.com/example/cookiecutter/internal/export"
	"github.com/example/cookiecutter/internal/imagefile"
	"github.com/example/cookiecutter/internal/interact"
	"github.com/example/cookiecutter/internal/notify"
	"github.com/example/cookiecutter/internal/render"
	"github.com/example/cookiecutter/internal/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// screenFraction caps the initial window to this share of the primary monitor.
const screenFraction = 0.9

type root struct {
	fs      *flag.FlagSet
	program string
	stdout  io.Writer

	configPath  string
	themeName   string
	verbose     bool
	printConfig bool
	showVersion bool

	// run opens the editor; tests replace it.
	run func(*appstate.AppState) error
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("cookiecutter", flag.ContinueOnError),
		program: "cookiecutter",
		stdout:  stdout,
		run:     (*appstate.AppState).Run,
	}
	r.fs.SetOutput(io.Discard)
	r.fs.StringVar(&r.configPath, "config", "", "path to the configuration file")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme name or path to a .theme file")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log debug output to stderr")
	r.fs.BoolVar(&r.printConfig, "print-config", false, "print the effective configuration and exit")
	r.fs.BoolVar(&r.showVersion, "version", false, "print the version and exit")
	return r
}

// parse reads flags and checks for exactly one image argument unless an
// informational flag was given.
func (r *root) parse(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return &UsageError{of: r}
	}
	if r.showVersion || r.printConfig {
		return nil
	}
	if r.fs.NArg() != 1 {
		return &UsageError{of: r}
	}
	return nil
}

func (r *root) Run(args []string) error {
	if err := r.parse(args); err != nil {
		return err
	}
	if r.showVersion {
		fmt.Fprintf(r.stdout, "%s version %s\n", r.program, versionString())
		return nil
	}

	log, err := newLogger(r.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		if r.configPath != "" {
			return fmt.Errorf("load config: %w", err)
		}
		log.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.New()
	}
	if r.printConfig {
		fmt.Fprint(r.stdout, cfg.String())
		return nil
	}

	path := r.fs.Arg(0)
	img, err := imagefile.Load(path)
	if err != nil {
		return err
	}
	state, err := r.newState(cfg, log, path, img)
	if err != nil {
		return err
	}
	return r.run(state)
}

// newState assembles the editor from the loaded configuration.
func (r *root) newState(cfg *config.Config, log *zap.Logger, path string, img *image.NRGBA) (*appstate.AppState, error) {
	limits := cfg.Crop.Limits()
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("crop settings: %w", err)
	}

	themeName := r.themeName
	if themeName == "" {
		themeName = cfg.Theme
	}
	loader := theme.NewLoader()
	loader.Inline = cfg.Themes
	t, err := loader.Load(themeName)
	if err != nil {
		log.Warn("failed to load theme, using default", zap.String("theme", themeName), zap.Error(err))
		t = theme.Default()
	}

	face, err := render.ResolveFace(cfg.Font, cfg.FontSize)
	if err != nil {
		log.Warn("no font available, text overlay disabled", zap.String("font", cfg.Font), zap.Error(err))
		face = nil
	}

	size := image.Pt(cfg.Window.Width, cfg.Window.Height)
	if screen, err := display.PrimarySize(); err == nil {
		size = display.FitWindow(size, screen, screenFraction)
	} else {
		log.Debug("monitor geometry unavailable", zap.Error(err))
	}

	notifier := notify.New(notify.LoadPreferences(os.LookupEnv), notify.WithLogger(log))
	notifier.Enable(notify.EventSave, cfg.Notify.Save)
	notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	log.Debug("loaded image", zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))

	return appstate.New(
		appstate.WithImage(img),
		appstate.WithTitle(windowTitle(titleOptions{File: filepath.Base(path)})),
		appstate.WithWindowSize(size.X, size.Y),
		appstate.WithPreviewSize(cfg.Window.PreviewSize),
		appstate.WithLimits(limits),
		appstate.WithInteract(interact.Options{
			HandleThreshold: cfg.Crop.HandleThreshold,
			Modifiers:       cfg.Crop.Modifiers,
		}),
		appstate.WithTheme(t),
		appstate.WithFace(face),
		appstate.WithExporter(export.New(export.WithDir(cfg.SaveDir))),
		appstate.WithNotifier(notifier),
		appstate.WithLogger(log),
		appstate.WithClipboard(clipboard.WriteImage),
	), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	r := newRoot(os.Stdout)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

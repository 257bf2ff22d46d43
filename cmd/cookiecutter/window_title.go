package main

import (
	"fmt"
	"strings"

	"github.com/example/cookiecutter/internal/appstate"
)

type titleOptions struct {
	File   string
	Extras []string
}

// windowTitle lists the program, the open file, the controls and the build.
func windowTitle(opts titleOptions) string {
	parts := []string{appstate.ProgramTitle}

	file := strings.TrimSpace(opts.File)
	if file != "" {
		parts = append(parts, file)
	}

	parts = append(parts, appstate.Controls)

	extras := make([]string, 0, len(opts.Extras)+2)
	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}
	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}
	extras = append(extras, opts.Extras...)

	return strings.Join(append(parts, extras...), " - ")
}

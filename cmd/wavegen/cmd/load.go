package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/project"
)

// isDump reports whether path names a VCD file rather than a project.
func isDump(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".vcd")
}

// openProject loads a saved project, or imports a VCD dump into a new one
// of the configured length.
func openProject(path string) (*project.Project, error) {
	if !isDump(path) {
		p, err := project.Load(path, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load project: %w", err)
		}
		return p, nil
	}

	p, err := project.New(cfg.Project.Length, log)
	if err != nil {
		return nil, err
	}
	if _, err := p.ImportVCD(cfg.Importer(), path); err != nil {
		return nil, fmt.Errorf("failed to import dump: %w", err)
	}
	return p, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"hookforge/pkg/builder"
	"hookforge/pkg/config"
	"hookforge/pkg/registry"
	"hookforge/pkg/scanner"
)

// generateConfig runs the selection and assembly stages of the pipeline:
// registry load, override merge, hook selection for the chosen technologies
// and document rendering. Scanning has already happened; writing is the
// caller's job.
func generateConfig(root string, det *scanner.Result, selected []scanner.Tech, cfg *config.Config, prePush bool) (string, []string, error) {
	reg, err := registry.Load()
	if err != nil {
		return "", nil, err
	}
	if err := reg.MergeOverrides(filepath.Join(root, registry.OverridesFile)); err != nil {
		return "", nil, err
	}
	if prePush {
		if err := reg.EnablePrePush(); err != nil {
			return "", nil, err
		}
	}
	reg.ApplyRevisionPins(cfg.RevisionPins)

	// Narrow the detection result to the technologies the user kept.
	chosen := restrict(det, selected)

	defs, warnings := reg.HooksFor(chosen)
	doc, buildWarnings, err := builder.Build(defs)
	if err != nil {
		return "", warnings, err
	}
	warnings = append(warnings, buildWarnings...)

	detected := make([]string, 0, len(selected))
	for _, tech := range selected {
		detected = append(detected, string(tech))
	}
	content, err := doc.Render(detected)
	if err != nil {
		return "", warnings, err
	}
	return content, warnings, nil
}

// restrict returns a result containing only the selected technologies, so
// deselected detections contribute no hooks.
func restrict(det *scanner.Result, selected []scanner.Tech) *scanner.Result {
	keep := make(map[scanner.Tech]bool, len(selected))
	for _, tech := range selected {
		keep[tech] = true
	}
	out := &scanner.Result{Root: det.Root, Techs: make(map[scanner.Tech]scanner.TechResult)}
	for tech, tr := range det.Techs {
		if keep[tech] {
			out.Techs[tech] = tr
		}
	}
	return out
}

// writeConfig writes the rendered configuration to path. An existing file is
// only replaced when force is set.
func writeConfig(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", filepath.Base(path))
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

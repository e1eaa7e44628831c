package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hookforge/pkg/scanner"
)

// OverridesFile is the well-known name of the per-repository override file.
// Its layout mirrors .pre-commit-config.yaml so entries can be moved between
// the two without editing.
const OverridesFile = ".hookforge-hooks.yaml"

type overrideHook struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name"`
	Args                   []string `yaml:"args"`
	AdditionalDependencies []string `yaml:"additional_dependencies"`
	Types                  []string `yaml:"types"`
	TypesOr                []string `yaml:"types_or"`
	Files                  string   `yaml:"files"`
	Stages                 []string `yaml:"stages"`
	AppliesTo              []string `yaml:"applies_to"`
}

type overrideRepo struct {
	Repo  string         `yaml:"repo"`
	Rev   string         `yaml:"rev"`
	Hooks []overrideHook `yaml:"hooks"`
}

type overrideFile struct {
	Repos []overrideRepo `yaml:"repos"`
}

// MergeOverrides loads user-supplied hook definitions from path and appends
// them to the registry at the custom tier. A missing file is not an error; a
// malformed one is a *RegistryError, raised before any scanning output is
// written.
func (r *Registry) MergeOverrides(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &RegistryError{Source: path, Reason: err.Error()}
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return &RegistryError{Source: path, Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(file.Repos) == 0 {
		return &RegistryError{Source: path, Reason: "no repos defined"}
	}

	var defs []HookDefinition
	for _, repo := range file.Repos {
		for _, h := range repo.Hooks {
			var techs []scanner.Tech
			for _, t := range h.AppliesTo {
				techs = append(techs, scanner.Tech(t))
			}
			defs = append(defs, HookDefinition{
				RepoURL:                repo.Repo,
				Rev:                    repo.Rev,
				HookID:                 h.ID,
				Name:                   h.Name,
				Priority:               TierCustom,
				Args:                   h.Args,
				AdditionalDependencies: h.AdditionalDependencies,
				Types:                  h.Types,
				TypesOr:                h.TypesOr,
				Files:                  h.Files,
				Stages:                 h.Stages,
				AppliesTo:              techs,
			})
		}
	}
	return r.add(path, defs)
}

// EnablePrePush appends the opt-in push-stage hooks to the registry.
func (r *Registry) EnablePrePush() error {
	return r.add("builtin", PrePushDefinitions())
}

// ApplyRevisionPins rewrites definition revisions from a repo URL to revision
// map, typically loaded from user config. Unknown URLs are left untouched.
func (r *Registry) ApplyRevisionPins(pins map[string]string) {
	if len(pins) == 0 {
		return
	}
	for i := range r.defs {
		if rev, ok := pins[r.defs[i].RepoURL]; ok && rev != "" {
			r.defs[i].Rev = rev
		}
	}
}

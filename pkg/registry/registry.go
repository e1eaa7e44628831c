// Package registry maps detected technologies to pre-commit hook
// definitions. The built-in table is static, embedded data; user overrides
// can be merged in before selection.
package registry

import (
	"fmt"
	"sort"

	"hookforge/pkg/scanner"
)

// Priority tiers. Lower values run earlier in the generated configuration.
const (
	TierSecurity  = 1  // secret and credential detection
	TierHygiene   = 2  // whitespace, EOF, large files, merge conflicts
	TierFormat    = 3  // language formatters
	TierLint      = 4  // language linters and type checkers
	TierFramework = 11 // framework-flavored lint/format variants
	TierWorkflow  = 12 // branch protection and push-stage checks
	TierCustom    = 15 // user-supplied override hooks
)

// RegistryError reports a malformed hook definition, either built-in or
// user-supplied. It is fatal at load time, before any scanning happens.
type RegistryError struct {
	Source string // "builtin" or the override file path
	Reason string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry: %s: %s", e.Source, e.Reason)
}

// HookDefinition describes one hook inside an upstream pre-commit repo.
// Definitions are immutable per run; the builder copies what it merges.
type HookDefinition struct {
	RepoURL                string
	Rev                    string
	HookID                 string
	Name                   string
	Priority               int
	Args                   []string
	AdditionalDependencies []string
	Types                  []string
	TypesOr                []string
	Files                  string
	Stages                 []string
	// AppliesTo lists the technologies this hook serves. Empty means
	// universal: included for every repository.
	AppliesTo []scanner.Tech
}

func (d HookDefinition) appliesTo(present map[scanner.Tech]bool) bool {
	if len(d.AppliesTo) == 0 {
		return true
	}
	for _, tech := range d.AppliesTo {
		if present[tech] {
			return true
		}
	}
	return false
}

// Registry holds hook definitions in declaration order.
type Registry struct {
	defs  []HookDefinition
	known map[scanner.Tech]bool
}

// Load builds the registry from the built-in definitions, validating every
// entry so a bad table can never produce a half-built config.
func Load() (*Registry, error) {
	r := &Registry{known: make(map[scanner.Tech]bool)}
	if err := r.add("builtin", builtinDefinitions()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(source string, defs []HookDefinition) error {
	for _, d := range defs {
		if d.RepoURL == "" {
			return &RegistryError{Source: source, Reason: fmt.Sprintf("hook %q has no repo URL", d.HookID)}
		}
		if d.HookID == "" {
			return &RegistryError{Source: source, Reason: fmt.Sprintf("repo %s defines a hook without an id", d.RepoURL)}
		}
		if d.Rev == "" {
			return &RegistryError{Source: source, Reason: fmt.Sprintf("hook %q in %s has no revision", d.HookID, d.RepoURL)}
		}
		if d.Priority <= 0 {
			return &RegistryError{Source: source, Reason: fmt.Sprintf("hook %q has no priority tier", d.HookID)}
		}
		for _, tech := range d.AppliesTo {
			r.known[tech] = true
		}
		r.defs = append(r.defs, d)
	}
	return nil
}

// Definitions returns all registered definitions in declaration order.
func (r *Registry) Definitions() []HookDefinition {
	return r.defs
}

// HooksFor selects the hook definitions applicable to the detection result:
// universal hooks plus every definition whose AppliesTo intersects the
// present technologies, ordered by priority tier with declaration order
// preserved inside a tier. Technologies the registry has no hooks for are
// reported as warnings, never as errors.
func (r *Registry) HooksFor(det *scanner.Result) ([]HookDefinition, []string) {
	present := make(map[scanner.Tech]bool)
	var warnings []string
	for _, tech := range det.Present() {
		present[tech] = true
		if !r.known[tech] {
			warnings = append(warnings, fmt.Sprintf("no hooks registered for technology %q", tech))
		}
	}

	var selected []HookDefinition
	for _, d := range r.defs {
		if d.appliesTo(present) {
			selected = append(selected, d)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Priority < selected[j].Priority
	})
	return selected, warnings
}

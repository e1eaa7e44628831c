package scanner

import (
	"fmt"
	"regexp"
)

// Tech identifies a detectable technology. Built-in values are declared
// below; custom technologies can be added with Catalog.Register.
type Tech string

const (
	TechPython     Tech = "python"
	TechJavaScript Tech = "javascript"
	TechTypeScript Tech = "typescript"
	TechReact      Tech = "react"
	TechVue        Tech = "vue"
	TechSvelte     Tech = "svelte"
	TechGo         Tech = "go"
	TechRust       Tech = "rust"
	TechTerraform  Tech = "terraform"
	TechDocker     Tech = "docker"
	TechShell      Tech = "shell"
	TechHTML       Tech = "html"
	TechCSS        Tech = "css"
	TechYAML       Tech = "yaml"
	TechJSON       Tech = "json"
	TechMarkdown   Tech = "markdown"
)

// Signal weights. A marker file (manifest, lockfile, framework config) is a
// strong signal and clears the presence threshold on its own; a lone
// extension match needs corroboration from content or a second file.
const (
	WeightMarker    = 2.5
	WeightExtension = 1.0

	// DefaultThreshold is the minimum accumulated score for a technology
	// to be reported as present.
	DefaultThreshold = 2.0
)

// ContentPattern is a weighted regular expression matched against file
// content. A pattern contributes its weight at most once per file.
type ContentPattern struct {
	Pattern *regexp.Regexp
	Weight  float64
}

// Signal describes how a single technology is recognized.
type Signal struct {
	Tech            Tech
	Extensions      []string // lowercase, with leading dot
	Markers         []string // exact base names, e.g. "go.mod"
	ContentPatterns []ContentPattern
	VersionFiles    []string // marker files probed for version info
	Implies         []Tech   // technologies implied present by this one
	Threshold       float64  // 0 means DefaultThreshold
}

func (s Signal) threshold() float64 {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return DefaultThreshold
}

// Catalog is an immutable-after-setup collection of technology signals.
// Build it once at startup and share it across scans; Scan never mutates it.
type Catalog struct {
	signals []Signal
	byTech  map[Tech]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byTech: make(map[Tech]int)}
}

// Register adds a signal to the catalog. Registering a technology twice is
// rejected so that built-in definitions cannot be silently shadowed.
func (c *Catalog) Register(sig Signal) error {
	if sig.Tech == "" {
		return fmt.Errorf("catalog: signal with empty technology id")
	}
	if _, dup := c.byTech[sig.Tech]; dup {
		return fmt.Errorf("catalog: technology %q already registered", sig.Tech)
	}
	c.byTech[sig.Tech] = len(c.signals)
	c.signals = append(c.signals, sig)
	return nil
}

// Signals returns the registered signals in registration order.
func (c *Catalog) Signals() []Signal {
	return c.signals
}

// Lookup returns the signal for a technology, if registered.
func (c *Catalog) Lookup(tech Tech) (Signal, bool) {
	i, ok := c.byTech[tech]
	if !ok {
		return Signal{}, false
	}
	return c.signals[i], true
}

func pat(expr string, weight float64) ContentPattern {
	return ContentPattern{Pattern: regexp.MustCompile(expr), Weight: weight}
}

// DefaultCatalog returns the built-in technology signals.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	builtin := []Signal{
		{
			Tech:       TechPython,
			Extensions: []string{".py", ".pyi", ".pyx"},
			Markers:    []string{"requirements.txt", "setup.py", "setup.cfg", "pyproject.toml", "Pipfile", "tox.ini"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^import\s+[a-zA-Z_][a-zA-Z0-9_]*`, 1.0),
				pat(`(?m)^from\s+[a-zA-Z_][a-zA-Z0-9_.]+\s+import`, 1.0),
				pat(`(?m)^def\s+[a-zA-Z_][a-zA-Z0-9_]*\s*\(`, 0.5),
				pat(`(?m)^class\s+[a-zA-Z_][a-zA-Z0-9_]*\s*(\([^)]*\))?\s*:`, 0.5),
			},
			VersionFiles: []string{"requirements.txt", "setup.cfg", "pyproject.toml", "tox.ini"},
		},
		{
			Tech:       TechJavaScript,
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			Markers:    []string{"package.json"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^import\s+.*from\s+['"]`, 1.0),
				pat(`(?m)^export\s+(default\s+)?(function|class|const)`, 1.0),
				pat(`require\(['"]`, 0.5),
			},
			VersionFiles: []string{"package.json"},
		},
		{
			Tech:       TechTypeScript,
			Extensions: []string{".ts", ".tsx"},
			Markers:    []string{"tsconfig.json"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^(export\s+)?interface\s+\w+`, 1.0),
				pat(`(?m)^(export\s+)?type\s+\w+\s*=`, 1.0),
				pat(`:\s*(string|number|boolean|unknown)\b`, 0.5),
			},
			VersionFiles: []string{"package.json"},
			Implies:      []Tech{TechJavaScript},
		},
		{
			Tech:       TechReact,
			Extensions: []string{".jsx", ".tsx"},
			ContentPatterns: []ContentPattern{
				pat(`import\s+.*['"]react['"]`, 1.5),
				pat(`React\.Component`, 1.0),
				pat(`\buse(State|Effect|Context|Reducer)\(`, 1.0),
			},
			VersionFiles: []string{"package.json"},
			Implies:      []Tech{TechJavaScript, TechHTML, TechCSS},
		},
		{
			Tech:       TechVue,
			Extensions: []string{".vue"},
			ContentPatterns: []ContentPattern{
				pat(`<template[\s>]`, 1.5),
				pat(`createApp\(`, 1.0),
				pat(`Vue\.component`, 1.0),
			},
			VersionFiles: []string{"package.json"},
			Implies:      []Tech{TechJavaScript, TechHTML, TechCSS},
		},
		{
			Tech:       TechSvelte,
			Extensions: []string{".svelte"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^<script[\s>]`, 1.0),
				pat(`(?m)^\$:`, 1.0),
				pat(`on:\w+=`, 0.5),
			},
			VersionFiles: []string{"package.json"},
			Implies:      []Tech{TechJavaScript, TechHTML, TechCSS},
		},
		{
			Tech:       TechGo,
			Extensions: []string{".go"},
			Markers:    []string{"go.mod", "go.sum"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^package\s+\w+`, 1.0),
				pat(`(?m)^func\s+\w+\s*\(`, 0.5),
				pat(`(?m)^type\s+\w+\s+struct\s*\{`, 0.5),
			},
			VersionFiles: []string{"go.mod"},
		},
		{
			Tech:       TechRust,
			Extensions: []string{".rs"},
			Markers:    []string{"Cargo.toml", "Cargo.lock"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^fn\s+\w+\s*\(`, 1.0),
				pat(`(?m)^(pub\s+)?struct\s+\w+`, 0.5),
				pat(`(?m)^impl\s+\w+`, 0.5),
				pat(`(?m)^use\s+\w+`, 0.5),
			},
			VersionFiles: []string{"Cargo.toml"},
		},
		{
			Tech:       TechTerraform,
			Extensions: []string{".tf", ".tfvars"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^resource\s+"`, 1.0),
				pat(`(?m)^provider\s+"`, 1.0),
				pat(`(?m)^variable\s+"`, 0.5),
			},
		},
		{
			Tech:       TechDocker,
			Extensions: []string{".dockerfile"},
			Markers:    []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^FROM\s+\S+`, 1.0),
				pat(`(?m)^ENTRYPOINT\s+`, 0.5),
			},
		},
		{
			Tech:       TechShell,
			Extensions: []string{".sh", ".bash", ".zsh"},
			ContentPatterns: []ContentPattern{
				pat(`(?m)^#!/(usr/)?bin/(env )?(ba|z)?sh`, 1.5),
				pat(`(?m)^if\s+\[\[.*\]\]`, 0.5),
			},
		},
		{
			Tech:       TechHTML,
			Extensions: []string{".html", ".htm", ".xhtml"},
			ContentPatterns: []ContentPattern{
				pat(`(?i)<!DOCTYPE\s+html>`, 1.0),
				pat(`(?i)<html[\s>]`, 1.0),
			},
		},
		{
			Tech:       TechCSS,
			Extensions: []string{".css", ".scss", ".sass", ".less"},
			ContentPatterns: []ContentPattern{
				pat(`@(media|import)\b`, 0.5),
			},
		},
		{Tech: TechYAML, Extensions: []string{".yml", ".yaml"}},
		{Tech: TechJSON, Extensions: []string{".json"}},
		{Tech: TechMarkdown, Extensions: []string{".md", ".markdown"}},
	}

	for _, sig := range builtin {
		// Registration of the built-in set cannot collide.
		if err := c.Register(sig); err != nil {
			panic(err)
		}
	}
	return c
}

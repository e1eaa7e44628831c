package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	requiresPythonRe = regexp.MustCompile(`requires-python\s*=\s*"([^"]+)"`)
	goDirectiveRe    = regexp.MustCompile(`(?m)^go (\d+\.\d+(?:\.\d+)?)`)
)

// packageManifest is the subset of package.json needed for version lookup.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// detectVersion extracts a version string for tech from a manifest file.
// Failures are silent: version info is advisory and never affects presence.
func detectVersion(tech Tech, path string) string {
	switch filepath.Base(path) {
	case "package.json":
		return versionFromPackageJSON(tech, path)
	case "pyproject.toml":
		return versionFromPyproject(path)
	case "requirements.txt":
		return "detected-via-requirements"
	case "setup.cfg", "tox.ini":
		return versionFromPythonConfig(path)
	case "go.mod":
		return versionFromGoMod(path)
	case "Cargo.toml":
		return versionFromCargoToml(path)
	}
	return ""
}

func versionFromPackageJSON(tech Tech, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}

	dep := func(name string) string {
		if v, ok := m.Dependencies[name]; ok {
			return v
		}
		return m.DevDependencies[name]
	}

	switch tech {
	case TechJavaScript:
		return "detected-via-package.json"
	case TechTypeScript:
		return dep("typescript")
	case TechReact:
		return dep("react")
	case TechVue:
		return dep("vue")
	case TechSvelte:
		return dep("svelte")
	}
	return ""
}

func versionFromPyproject(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if m := requiresPythonRe.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	if strings.Contains(string(data), "tool.poetry") {
		return "detected-via-poetry"
	}
	return ""
}

// versionFromPythonConfig reports Python tooling declared in setup.cfg or
// tox.ini. The sections listed here are only ever written by hand for Python
// projects, so any hit is a reliable marker.
func versionFromPythonConfig(path string) string {
	cfg, err := ini.Load(path)
	if err != nil {
		return ""
	}
	for _, section := range []string{"flake8", "mypy", "isort", "tox", "tool:pytest"} {
		if cfg.HasSection(section) {
			return "detected-via-" + filepath.Base(path)
		}
	}
	return ""
}

func versionFromGoMod(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if m := goDirectiveRe.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	return ""
}

func versionFromCargoToml(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if strings.Contains(string(data), "[package]") {
		return "detected-via-cargo"
	}
	return ""
}

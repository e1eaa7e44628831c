package pipeline_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hookforge/pkg/builder"
	"hookforge/pkg/registry"
	"hookforge/pkg/scanner"
)

// Test helper to create temporary test project directories
func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write file %s: %v", path, err)
		}
	}
	return tmpDir
}

// generate runs the full scan -> select -> build -> render pipeline.
func generate(t *testing.T, root string) (string, *scanner.Result) {
	t.Helper()

	det, err := scanner.New(scanner.DefaultCatalog()).Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	reg, err := registry.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defs, _ := reg.HooksFor(det)

	doc, _, err := builder.Build(defs)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var detected []string
	for _, tech := range det.Present() {
		detected = append(detected, string(tech))
	}
	out, err := doc.Render(detected)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out, det
}

func TestPipelinePythonProject(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"main.py":          "import os\n\n\ndef main():\n    print(os.getcwd())\n",
		"lib/util.py":      "def helper():\n    return 42\n",
		"requirements.txt": "flask==3.0.0\n",
	})

	out, det := generate(t, root)

	if !det.IsPresent(scanner.TechPython) {
		t.Fatalf("python not detected: %+v", det.Techs)
	}
	for _, want := range []string{"ruff", "black", "gitleaks", "trailing-whitespace"} {
		if !strings.Contains(out, "id: "+want) {
			t.Errorf("missing hook %q in output:\n%s", want, out)
		}
	}
	for _, reject := range []string{"eslint", "golangci-lint", "hadolint"} {
		if strings.Contains(out, "id: "+reject) {
			t.Errorf("unexpected hook %q for a python-only project", reject)
		}
	}
	if !strings.Contains(out, "# Technologies detected: python") {
		t.Errorf("header missing python:\n%s", out)
	}
}

func TestPipelineTypeScriptProject(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"package.json":  `{"dependencies": {"typescript": "^5.0.0"}}`,
		"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
		"src/index.ts":  "export interface User {\n  name: string\n}\n",
		"src/app.tsx":   "export const App = () => null\n",
	})

	out, det := generate(t, root)

	if !det.IsPresent(scanner.TechTypeScript) {
		t.Fatalf("typescript not detected: %+v", det.Techs)
	}
	if !det.IsPresent(scanner.TechJavaScript) {
		t.Error("typescript should imply javascript")
	}
	if !strings.Contains(out, "types_or: [ts, tsx]") {
		t.Errorf("typescript hooks should restrict to ts/tsx via types_or:\n%s", out)
	}
	if !strings.Contains(out, "id: prettier") || !strings.Contains(out, "id: eslint") {
		t.Errorf("missing prettier/eslint hooks:\n%s", out)
	}
}

func TestPipelineEmptyProject(t *testing.T) {
	out, det := generate(t, t.TempDir())

	if got := det.Present(); len(got) != 0 {
		t.Fatalf("empty project detected technologies: %v", got)
	}
	if !strings.Contains(out, "# No technologies detected") {
		t.Errorf("missing empty-detection header:\n%s", out)
	}
	for _, want := range []string{"trailing-whitespace", "end-of-file-fixer", "gitleaks"} {
		if !strings.Contains(out, "id: "+want) {
			t.Errorf("base hook %q missing from empty project output", want)
		}
	}
	for _, reject := range []string{"ruff", "eslint", "golangci-lint"} {
		if strings.Contains(out, "id: "+reject) {
			t.Errorf("language hook %q present in empty project output", reject)
		}
	}
}

func TestPipelineMixedProjectOrdering(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"go.mod":           "module example.com/svc\n\ngo 1.22\n",
		"main.go":          "package main\n\nfunc main() {}\n",
		"scripts/check.py": "import sys\n\nsys.exit(0)\n",
		"requirements.txt": "requests==2.31.0\n",
	})

	out, det := generate(t, root)

	if !det.IsPresent(scanner.TechGo) || !det.IsPresent(scanner.TechPython) {
		t.Fatalf("expected go and python, got %+v", det.Techs)
	}

	// Security and hygiene blocks come before any language tooling.
	secIdx := strings.Index(out, "id: detect-private-key")
	ruffIdx := strings.Index(out, "id: ruff")
	golangciIdx := strings.Index(out, "id: golangci-lint")
	if secIdx < 0 || ruffIdx < 0 || golangciIdx < 0 {
		t.Fatalf("expected hooks missing:\n%s", out)
	}
	if secIdx > ruffIdx || secIdx > golangciIdx {
		t.Errorf("security hooks must precede language hooks:\nsec=%d ruff=%d golangci=%d", secIdx, ruffIdx, golangciIdx)
	}
	if !strings.Contains(out, "# Technologies detected: go, python") {
		t.Errorf("header should list technologies sorted:\n%s", out)
	}
}

func TestPipelineOutputIsStable(t *testing.T) {
	root := createTestProject(t, map[string]string{
		"main.py": "import os\n",
		"util.sh": "#!/bin/sh\necho ok\n",
	})

	first, _ := generate(t, root)
	second, _ := generate(t, root)
	if first != second {
		t.Error("two runs over an unchanged tree produced different output")
	}
}

package scanner_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"hookforge/pkg/scanner"
)

// createTestRepo materializes a fixture tree in a temp directory.
func createTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file %s: %v", path, err)
		}
	}
	return tmpDir
}

func scan(t *testing.T, root string) *scanner.Result {
	t.Helper()
	det, err := scanner.New(scanner.DefaultCatalog()).Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return det
}

func TestScanPythonOnly(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"main.py": "import os\n\n\ndef main():\n    print(os.getcwd())\n",
	})

	det := scan(t, root)

	if !det.IsPresent(scanner.TechPython) {
		t.Fatalf("python not detected: %+v", det.Techs)
	}
	for _, tech := range []scanner.Tech{scanner.TechJavaScript, scanner.TechGo, scanner.TechRust} {
		if det.IsPresent(tech) {
			t.Errorf("%s unexpectedly present", tech)
		}
	}
	if got := det.Techs[scanner.TechPython].EvidenceCount; got < 2 {
		t.Errorf("expected extension plus content evidence, got %d", got)
	}
}

func TestScanMarkerFileAlone(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.22\n",
	})

	det := scan(t, root)

	if !det.IsPresent(scanner.TechGo) {
		t.Fatal("a go.mod manifest alone should mark go present")
	}
	if got := det.Techs[scanner.TechGo].Version; got != "1.22" {
		t.Errorf("go version = %q, want %q", got, "1.22")
	}
}

func TestScanSingleExtensionNeedsCorroboration(t *testing.T) {
	// An empty .go file scores below the threshold: extension weight only.
	root := createTestRepo(t, map[string]string{
		"notes.go": "",
	})

	det := scan(t, root)

	if det.IsPresent(scanner.TechGo) {
		t.Errorf("a lone empty .go file should not mark go present: %+v", det.Techs[scanner.TechGo])
	}
}

func TestScanEmptyRepository(t *testing.T) {
	det := scan(t, t.TempDir())

	if got := det.Present(); len(got) != 0 {
		t.Errorf("empty repository detected technologies: %v", got)
	}
}

func TestScanInvalidRoot(t *testing.T) {
	s := scanner.New(scanner.DefaultCatalog())

	_, err := s.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	var pathErr *scanner.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *PathError, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = s.Scan(file)
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *PathError for file root, got %v", err)
	}
}

func TestScanSkipsIgnoredDirectories(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"node_modules/lib/index.js": "module.exports = {};\n",
		"node_modules/lib/a.js":     "module.exports = {};\n",
		".git/hooks/sample.py":      "import os\n",
		"dist/bundle.js":            "var x = 1;\n",
		"README.txt":                "hello\n",
	})

	det := scan(t, root)

	if det.IsPresent(scanner.TechJavaScript) {
		t.Error("javascript detected from ignored directories")
	}
	if det.IsPresent(scanner.TechPython) {
		t.Error("python detected from VCS metadata")
	}
}

func TestScanSkipsBinaryContent(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"logo.png": "import os\nfake image with a matching pattern",
		"blob.dat": "import os\x00binary",
	})

	det := scan(t, root)

	if det.IsPresent(scanner.TechPython) {
		t.Errorf("python detected from binary files: %+v", det.Techs[scanner.TechPython])
	}
}

func TestScanDeterministic(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"main.py":          "import os\n",
		"lib/util.py":      "def helper():\n    pass\n",
		"go.mod":           "module demo\n\ngo 1.22\n",
		"cmd/app/main.go":  "package main\n\nfunc main() {}\n",
		"web/app.ts":       "interface Props {}\n",
		"web/index.tsx":    "import React from 'react'\n",
		"docs/readme.md":   "# Demo\n",
		"scripts/build.sh": "#!/bin/sh\necho build\n",
	})

	first := scan(t, root)
	second := scan(t, root)

	if !reflect.DeepEqual(first.Techs, second.Techs) {
		t.Errorf("scan results differ between runs:\n%+v\n%+v", first.Techs, second.Techs)
	}
}

func TestScanImpliedTechnologies(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"src/api.ts":   "export interface User {\n  name: string\n}\n",
		"src/props.ts": "export type Props = {\n  id: number\n}\n",
	})

	det := scan(t, root)

	if !det.IsPresent(scanner.TechTypeScript) {
		t.Fatal("typescript not detected")
	}
	if !det.IsPresent(scanner.TechJavaScript) {
		t.Fatal("typescript presence should imply javascript")
	}
	if got := det.Techs[scanner.TechJavaScript].Version; got != "implied-by-typescript" {
		t.Errorf("javascript version = %q, want implied marker", got)
	}
}

func TestScanVersionFromPackageJSON(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"package.json": `{"dependencies": {"typescript": "^5.0.0"}}`,
		"src/a.ts":     "interface A {}\n",
		"src/b.tsx":    "type B = {}\n",
	})

	det := scan(t, root)

	if !det.IsPresent(scanner.TechTypeScript) {
		t.Fatal("typescript not detected")
	}
	if got := det.Techs[scanner.TechTypeScript].Version; got != "^5.0.0" {
		t.Errorf("typescript version = %q, want %q", got, "^5.0.0")
	}
	if !det.IsPresent(scanner.TechJavaScript) {
		t.Error("package.json manifest should mark javascript present")
	}
}

func TestScanPythonToolingConfig(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"setup.cfg": "[flake8]\nmax-line-length = 100\n",
		"app.py":    "import flask\n",
	})

	det := scan(t, root)

	if !det.IsPresent(scanner.TechPython) {
		t.Fatal("python not detected")
	}
	if got := det.Techs[scanner.TechPython].Version; got != "detected-via-setup.cfg" {
		t.Errorf("python version marker = %q, want %q", got, "detected-via-setup.cfg")
	}
}

func TestScanFreshResultPerCall(t *testing.T) {
	s := scanner.New(scanner.DefaultCatalog())

	pyRoot := createTestRepo(t, map[string]string{"main.py": "import os\n"})
	goRoot := createTestRepo(t, map[string]string{"go.mod": "module demo\n\ngo 1.22\n"})

	if det, err := s.Scan(pyRoot); err != nil || !det.IsPresent(scanner.TechPython) {
		t.Fatalf("python scan: %v %v", det, err)
	}
	det, err := s.Scan(goRoot)
	if err != nil {
		t.Fatal(err)
	}
	if det.IsPresent(scanner.TechPython) {
		t.Error("state leaked between scans: python present in go-only repo")
	}
}

func TestScanConfidenceTiers(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 12; i++ {
		files[filepath.Join("pkg", string(rune('a'+i))+".go")] = "package pkg\n"
	}
	root := createTestRepo(t, files)

	det := scan(t, root)

	if got := det.Techs[scanner.TechGo].Confidence; got < 0.9 {
		t.Errorf("confidence = %v, want >= 0.9 for %d files", got, len(files))
	}
}

func TestCatalogRegister(t *testing.T) {
	c := scanner.NewCatalog()
	sig := scanner.Signal{Tech: "protobuf", Extensions: []string{".proto"}}

	if err := c.Register(sig); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Register(sig); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := c.Register(scanner.Signal{}); err == nil {
		t.Error("empty technology id should fail")
	}

	if _, ok := c.Lookup("protobuf"); !ok {
		t.Error("registered technology not found")
	}
}

func TestScanWithMaxFiles(t *testing.T) {
	root := createTestRepo(t, map[string]string{
		"a.py": "import os\n",
		"b.py": "import sys\n",
		"c.py": "import json\n",
	})

	det, err := scanner.New(scanner.DefaultCatalog(), scanner.WithMaxFiles(1)).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := det.Techs[scanner.TechPython].EvidenceCount; got > 2 {
		t.Errorf("file ceiling not applied, evidence = %d", got)
	}
}

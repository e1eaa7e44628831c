// Package scanner walks a repository tree and detects which technologies are
// present based on weighted file-extension and content-pattern signals.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan limits. The file-count ceiling and probe size bound scan time on very
// large repositories; both can be overridden with options.
const (
	DefaultMaxFiles    = 5000
	DefaultMaxFileSize = 1 << 20 // files larger than this are not content-probed
	probeSize          = 64 << 10
)

// ignoredDirs are never descended into: VCS metadata, dependency trees,
// build output and virtualenvs.
var ignoredDirs = map[string]bool{
	".git":          true,
	".svn":          true,
	".hg":           true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	"dist":          true,
	"build":         true,
	"vendor":        true,
	"target":        true,
}

// binaryExts short-circuits the null-byte sniff for well-known binary formats.
var binaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".bz2": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".wasm": true, ".jar": true, ".class": true, ".pyc": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
	".mp3": true, ".mp4": true, ".mov": true, ".webm": true, ".webp": true,
}

// PathError reports an unusable scan root. It is fatal: no detection result
// is produced.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("scanner: invalid root %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

var errNotDirectory = fmt.Errorf("not a directory")

// TechResult holds the accumulated evidence for one technology.
type TechResult struct {
	Tech          Tech    `json:"technology"`
	Present       bool    `json:"present"`
	Score         float64 `json:"score"`
	EvidenceCount int     `json:"evidence_count"`
	Version       string  `json:"version,omitempty"`
	Confidence    float64 `json:"confidence"`
}

// Result is the outcome of a single scan. It is built fresh per Scan call
// and never mutated afterwards.
type Result struct {
	Root     string              `json:"root"`
	Techs    map[Tech]TechResult `json:"technologies"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Present returns the present technology ids in lexical order.
func (r *Result) Present() []Tech {
	var techs []Tech
	for tech, tr := range r.Techs {
		if tr.Present {
			techs = append(techs, tech)
		}
	}
	sort.Slice(techs, func(i, j int) bool { return techs[i] < techs[j] })
	return techs
}

// IsPresent reports whether a technology cleared its presence threshold.
func (r *Result) IsPresent(tech Tech) bool {
	return r.Techs[tech].Present
}

// Scanner applies a catalog of technology signals to a repository tree.
// A Scanner is safe for concurrent use: the catalog is read-only and all
// per-scan state lives in the Result.
type Scanner struct {
	catalog     *Catalog
	maxFiles    int
	maxFileSize int64
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxFiles caps the number of files visited per scan.
func WithMaxFiles(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxFiles = n
		}
	}
}

// WithMaxFileSize caps the size of files eligible for content probing.
func WithMaxFileSize(n int64) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// New creates a Scanner over the given catalog.
func New(catalog *Catalog, opts ...Option) *Scanner {
	s := &Scanner{
		catalog:     catalog,
		maxFiles:    DefaultMaxFiles,
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// accum is the per-technology accumulator. Additions are associative and
// commutative, so traversal order never changes the final scores.
type accum struct {
	score    float64
	evidence int
	version  string
}

// Scan walks root and returns the detection result. It fails with *PathError
// when root does not exist or is not a directory; individual unreadable files
// are recorded as warnings and skipped.
func (s *Scanner) Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Err: errNotDirectory}
	}

	acc := make(map[Tech]*accum, len(s.catalog.Signals()))
	for _, sig := range s.catalog.Signals() {
		acc[sig.Tech] = &accum{}
	}

	var warnings []string
	visited := 0

	// filepath.WalkDir visits entries in lexical order, which keeps scores
	// reproducible for an unchanged tree. Symlinks are not followed.
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unreadable: %s: %v", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && ignoredDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if visited >= s.maxFiles {
			return fs.SkipAll
		}
		visited++

		s.scanFile(root, path, d, acc, &warnings)
		return nil
	})
	if walkErr != nil {
		return nil, &PathError{Path: root, Err: walkErr}
	}

	s.applyImplied(acc)

	result := &Result{
		Root:     root,
		Techs:    make(map[Tech]TechResult, len(acc)),
		Warnings: warnings,
	}
	for _, sig := range s.catalog.Signals() {
		a := acc[sig.Tech]
		if a.score == 0 {
			continue
		}
		tr := TechResult{
			Tech:          sig.Tech,
			Score:         a.score,
			EvidenceCount: a.evidence,
			Version:       a.version,
			Present:       a.score >= sig.threshold(),
		}
		tr.Confidence = confidence(tr)
		result.Techs[sig.Tech] = tr
	}
	return result, nil
}

func (s *Scanner) scanFile(root, path string, d fs.DirEntry, acc map[Tech]*accum, warnings *[]string) {
	base := d.Name()
	ext := strings.ToLower(filepath.Ext(base))

	for _, sig := range s.catalog.Signals() {
		a := acc[sig.Tech]
		if containsString(sig.Markers, base) {
			a.score += WeightMarker
			a.evidence++
		} else if containsString(sig.Extensions, ext) {
			a.score += WeightExtension
			a.evidence++
		}
		// Version files are probed for every technology that lists them:
		// package.json names typescript or react versions even though it
		// is a javascript marker.
		if a.version == "" && containsString(sig.VersionFiles, base) {
			a.version = detectVersion(sig.Tech, path)
		}
	}

	if binaryExts[ext] {
		return
	}
	fi, err := d.Info()
	if err != nil || fi.Size() > s.maxFileSize {
		return
	}

	content, err := readProbe(path)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("unreadable: %s: %v", path, err))
		return
	}
	if len(content) == 0 || bytes.IndexByte(content, 0) >= 0 {
		return
	}

	for _, sig := range s.catalog.Signals() {
		for _, cp := range sig.ContentPatterns {
			// A pattern family contributes once per file so that
			// repetitive files do not dominate the score.
			if cp.Pattern.Match(content) {
				a := acc[sig.Tech]
				a.score += cp.Weight
				a.evidence++
				break
			}
		}
	}
}

// applyImplied propagates presence from frameworks to their base
// technologies: a TypeScript repository is a JavaScript repository even when
// no .js file exists.
func (s *Scanner) applyImplied(acc map[Tech]*accum) {
	for _, sig := range s.catalog.Signals() {
		a := acc[sig.Tech]
		if a.score < sig.threshold() {
			continue
		}
		for _, implied := range sig.Implies {
			target, ok := s.catalog.Lookup(implied)
			if !ok {
				continue
			}
			ta := acc[implied]
			if ta.score < target.threshold() {
				ta.score = target.threshold()
				if ta.version == "" {
					ta.version = "implied-by-" + string(sig.Tech)
				}
			}
		}
	}
}

// confidence maps evidence volume to a 0..1 confidence estimate, boosted
// when version information was recovered from a manifest.
func confidence(tr TechResult) float64 {
	var c float64
	switch {
	case tr.EvidenceCount >= 10:
		c = 0.9
	case tr.EvidenceCount >= 5:
		c = 0.7
	case tr.EvidenceCount >= 2:
		c = 0.5
	default:
		c = 0.3
	}
	if tr.Version != "" {
		c += 0.1
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}

func readProbe(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

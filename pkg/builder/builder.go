// Package builder assembles an ordered, deduplicated pre-commit
// configuration document from selected hook definitions.
package builder

import (
	"fmt"
	"sort"

	"hookforge/pkg/registry"
)

// HookEntry is one hook inside a repo block.
type HookEntry struct {
	ID                     string
	Name                   string
	Args                   []string
	AdditionalDependencies []string
	Types                  []string
	TypesOr                []string
	Files                  string
	Stages                 []string

	priority int
}

// RepoBlock groups the hooks sourced from one upstream repository, sharing
// one revision pin.
type RepoBlock struct {
	Repo  string
	Rev   string
	Hooks []HookEntry

	minPriority int
}

// Document is the assembled configuration. Repo URLs are unique across
// blocks and hook IDs are unique within a block.
type Document struct {
	Blocks []RepoBlock
}

// Build merges hook definitions into a Document. Definitions sharing a repo
// URL collapse into one block (first-seen revision wins; a mismatch is a
// warning, not an error). Re-added hook IDs union their additional
// dependencies and keep the first occurrence's other fields. Blocks are
// ordered by the minimum priority among their hooks, stable on first
// insertion for ties.
func Build(defs []registry.HookDefinition) (*Document, []string, error) {
	blocks := make(map[string]*RepoBlock)
	var order []string
	var warnings []string

	for _, d := range defs {
		if d.RepoURL == "" {
			return nil, warnings, &registry.RegistryError{
				Source: "builder",
				Reason: fmt.Sprintf("hook %q has no repo URL", d.HookID),
			}
		}

		block, ok := blocks[d.RepoURL]
		if !ok {
			block = &RepoBlock{Repo: d.RepoURL, Rev: d.Rev, minPriority: d.Priority}
			blocks[d.RepoURL] = block
			order = append(order, d.RepoURL)
		} else if d.Rev != "" && d.Rev != block.Rev {
			warnings = append(warnings, fmt.Sprintf(
				"revision mismatch for %s: keeping %s, ignoring %s", d.RepoURL, block.Rev, d.Rev))
		}
		if d.Priority < block.minPriority {
			block.minPriority = d.Priority
		}

		if existing := block.find(d.HookID); existing != nil {
			existing.AdditionalDependencies = unionSorted(
				existing.AdditionalDependencies, d.AdditionalDependencies)
			continue
		}
		block.Hooks = append(block.Hooks, HookEntry{
			ID:                     d.HookID,
			Name:                   d.Name,
			Args:                   append([]string(nil), d.Args...),
			AdditionalDependencies: append([]string(nil), d.AdditionalDependencies...),
			Types:                  append([]string(nil), d.Types...),
			TypesOr:                append([]string(nil), d.TypesOr...),
			Files:                  d.Files,
			Stages:                 append([]string(nil), d.Stages...),
			priority:               d.Priority,
		})
	}

	doc := &Document{Blocks: make([]RepoBlock, 0, len(order))}
	for _, url := range order {
		doc.Blocks = append(doc.Blocks, *blocks[url])
	}
	sort.SliceStable(doc.Blocks, func(i, j int) bool {
		return doc.Blocks[i].minPriority < doc.Blocks[j].minPriority
	})
	return doc, warnings, nil
}

func (b *RepoBlock) find(hookID string) *HookEntry {
	for i := range b.Hooks {
		if b.Hooks[i].ID == hookID {
			return &b.Hooks[i]
		}
	}
	return nil
}

// MinPriority returns the most urgent priority tier within the block.
func (b *RepoBlock) MinPriority() int { return b.minPriority }

func unionSorted(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

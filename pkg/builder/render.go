package builder

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const generatorName = "hookforge"

// Render serializes the document to pre-commit YAML. The header comment
// records the generator and the detected technology set so a later
// regeneration can be diffed against it to spot stack drift. Output is
// byte-identical for identical inputs.
func (d *Document) Render(detected []string) (string, error) {
	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "# Pre-commit configuration generated by %s\n", generatorName)
	if len(detected) > 0 {
		sorted := append([]string(nil), detected...)
		sort.Strings(sorted)
		fmt.Fprintf(&sb, "# Technologies detected: %s\n", strings.Join(sorted, ", "))
	} else {
		sb.WriteString("# No technologies detected\n")
	}
	sb.WriteString("# To install: pre-commit install\n")
	sb.WriteString("# To update: pre-commit autoupdate\n\n")

	body, err := yaml.Marshal(yamlDoc{Repos: d.yamlRepos()})
	if err != nil {
		return "", fmt.Errorf("builder: render: %w", err)
	}
	sb.WriteString(spaceRepoBlocks(string(body)))
	return sb.String(), nil
}

type yamlDoc struct {
	Repos []yamlRepo `yaml:"repos"`
}

type yamlRepo struct {
	Repo  string     `yaml:"repo"`
	Rev   string     `yaml:"rev"`
	Hooks []yamlHook `yaml:"hooks"`
}

type yamlHook struct {
	ID                     string  `yaml:"id"`
	Name                   string  `yaml:"name,omitempty"`
	Args                   flowSeq `yaml:"args,omitempty"`
	AdditionalDependencies flowSeq `yaml:"additional_dependencies,omitempty"`
	Types                  flowSeq `yaml:"types,omitempty"`
	TypesOr                flowSeq `yaml:"types_or,omitempty"`
	Files                  string  `yaml:"files,omitempty"`
	Stages                 flowSeq `yaml:"stages,omitempty"`
}

// flowSeq renders a string list in flow style: args: ["--fix"].
type flowSeq []string

func (f flowSeq) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range f {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: v,
		})
	}
	return node, nil
}

func (d *Document) yamlRepos() []yamlRepo {
	repos := make([]yamlRepo, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		r := yamlRepo{Repo: block.Repo, Rev: block.Rev}
		for _, h := range block.Hooks {
			r.Hooks = append(r.Hooks, yamlHook{
				ID:                     h.ID,
				Name:                   h.Name,
				Args:                   h.Args,
				AdditionalDependencies: h.AdditionalDependencies,
				Types:                  h.Types,
				TypesOr:                h.TypesOr,
				Files:                  h.Files,
				Stages:                 h.Stages,
			})
		}
		repos = append(repos, r)
	}
	return repos
}

// spaceRepoBlocks inserts a blank line between top-level repo entries for
// readability, matching the layout pre-commit users expect.
func spaceRepoBlocks(body string) string {
	lines := strings.Split(body, "\n")
	var out []string
	seenFirst := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "- repo:") {
			if seenFirst {
				out = append(out, "")
			}
			seenFirst = true
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

package registry

import "hookforge/pkg/scanner"

// Upstream hook repositories.
const (
	repoPreCommitHooks = "https://github.com/pre-commit/pre-commit-hooks"
	repoGitleaks       = "https://github.com/gitleaks/gitleaks"
	repoRuff           = "https://github.com/astral-sh/ruff-pre-commit"
	repoBlack          = "https://github.com/psf/black"
	repoIsort          = "https://github.com/pycqa/isort"
	repoFlake8         = "https://github.com/pycqa/flake8"
	repoPyright        = "https://github.com/RobertCraigie/pyright-python"
	repoValidatePyproj = "https://github.com/abravalheri/validate-pyproject"
	repoPrettier       = "https://github.com/pre-commit/mirrors-prettier"
	repoESLint         = "https://github.com/pre-commit/mirrors-eslint"
	repoCurlylint      = "https://github.com/thibaudcolas/curlylint"
	repoCSSLint        = "https://github.com/pre-commit/mirrors-csslint"
	repoYamllint       = "https://github.com/adrienverge/yamllint"
	repoMarkdownlint   = "https://github.com/igorshubovych/markdownlint-cli"
	repoHadolint       = "https://github.com/hadolint/hadolint"
	repoTerraform      = "https://github.com/antonbabenko/pre-commit-terraform"
	repoTFLint         = "https://github.com/terraform-linters/tflint"
	repoShellcheck     = "https://github.com/shellcheck-py/shellcheck-py"
	repoGolangciLint   = "https://github.com/golangci/golangci-lint"
	repoGolang         = "https://github.com/dnephin/pre-commit-golang"
	repoRust           = "https://github.com/doublify/pre-commit-rust"
)

// Pinned revisions per upstream repo. These are the defaults; user config
// can pin different revisions (see pkg/config).
var defaultRevs = map[string]string{
	repoPreCommitHooks: "v5.0.0",
	repoGitleaks:       "v8.24.3",
	repoRuff:           "v0.11.6",
	repoBlack:          "25.1.0",
	repoIsort:          "6.0.1",
	repoFlake8:         "7.2.0",
	repoPyright:        "v1.1.399",
	repoValidatePyproj: "v0.24.1",
	repoPrettier:       "v4.0.0-alpha.8",
	repoESLint:         "v9.25.0",
	repoCurlylint:      "v0.13.1",
	repoCSSLint:        "v1.0.5",
	repoYamllint:       "v1.37.0",
	repoMarkdownlint:   "v0.44.0",
	repoHadolint:       "v2.12.0",
	repoTerraform:      "v1.83.5",
	repoTFLint:         "v0.48.0",
	repoShellcheck:     "v0.10.0.1",
	repoGolangciLint:   "v1.55.2",
	repoGolang:         "v0.5.1",
	repoRust:           "v1.0",
}

func def(repo, id, name string, priority int, techs ...scanner.Tech) HookDefinition {
	return HookDefinition{
		RepoURL:   repo,
		Rev:       defaultRevs[repo],
		HookID:    id,
		Name:      name,
		Priority:  priority,
		AppliesTo: techs,
	}
}

// builtinDefinitions returns the static hook table. Declaration order is the
// tie-break inside a priority tier, so related hooks are grouped here.
func builtinDefinitions() []HookDefinition {
	defs := []HookDefinition{
		// Security: always on, before everything else.
		def(repoPreCommitHooks, "detect-private-key", "Detect private keys", TierSecurity),
		def(repoPreCommitHooks, "detect-aws-credentials", "Detect AWS credentials", TierSecurity),
		def(repoGitleaks, "gitleaks", "Detect hardcoded secrets", TierSecurity),

		// Universal file hygiene.
		{
			RepoURL: repoPreCommitHooks, Rev: defaultRevs[repoPreCommitHooks],
			HookID: "trailing-whitespace", Name: "Trim trailing whitespace",
			Priority: TierHygiene, Args: []string{"--markdown-linebreak-ext=md"},
		},
		def(repoPreCommitHooks, "end-of-file-fixer", "Fix end of files", TierHygiene),
		def(repoPreCommitHooks, "check-yaml", "Check YAML syntax", TierHygiene),
		def(repoPreCommitHooks, "check-toml", "Check TOML syntax", TierHygiene),
		def(repoPreCommitHooks, "check-added-large-files", "Check for large files", TierHygiene),
		def(repoPreCommitHooks, "check-merge-conflict", "Check for merge conflicts", TierHygiene),
		def(repoPreCommitHooks, "check-case-conflict", "Check for case conflicts", TierHygiene),
		def(repoPreCommitHooks, "check-executables-have-shebangs", "Check executables have shebangs", TierHygiene),
		def(repoPreCommitHooks, "check-vcs-permalinks", "Check VCS permalinks", TierHygiene),

		// Python.
		def(repoRuff, "ruff-format", "Format Python code with Ruff", TierFormat, scanner.TechPython),
		{
			RepoURL: repoRuff, Rev: defaultRevs[repoRuff],
			HookID: "ruff", Name: "Lint Python code with Ruff",
			Priority: TierLint, Args: []string{"--fix"}, AppliesTo: []scanner.Tech{scanner.TechPython},
		},
		def(repoBlack, "black", "Format Python code with Black", TierFormat, scanner.TechPython),
		{
			RepoURL: repoIsort, Rev: defaultRevs[repoIsort],
			HookID: "isort", Name: "Sort Python imports",
			Priority: TierFormat, Args: []string{"--profile", "black"}, AppliesTo: []scanner.Tech{scanner.TechPython},
		},
		def(repoFlake8, "flake8", "Lint Python code with Flake8", TierLint, scanner.TechPython),
		def(repoPyright, "pyright", "Check Python types with Pyright", TierLint, scanner.TechPython),
		def(repoValidatePyproj, "validate-pyproject", "Validate pyproject.toml", TierLint, scanner.TechPython),

		// TypeScript before JavaScript: a TypeScript repository always has
		// javascript implied, and the first-declared variant wins the hook-id
		// merge, keeping the ts/tsx file selector.
		{
			RepoURL: repoPrettier, Rev: defaultRevs[repoPrettier],
			HookID: "prettier", Name: "Format TypeScript code",
			Priority: TierFormat, TypesOr: []string{"ts", "tsx"},
			AdditionalDependencies: []string{"prettier-plugin-organize-imports"},
			AppliesTo:              []scanner.Tech{scanner.TechTypeScript},
		},
		{
			RepoURL: repoESLint, Rev: defaultRevs[repoESLint],
			HookID: "eslint", Name: "Lint TypeScript code",
			Priority: TierLint, Args: []string{"--fix"}, TypesOr: []string{"ts", "tsx"},
			AdditionalDependencies: []string{
				"@typescript-eslint/eslint-plugin",
				"@typescript-eslint/parser",
				"eslint-plugin-import",
				"typescript",
			},
			AppliesTo: []scanner.Tech{scanner.TechTypeScript},
		},
		{
			RepoURL: repoPrettier, Rev: defaultRevs[repoPrettier],
			HookID: "prettier", Name: "Format code with Prettier",
			Priority: TierFormat, Types: []string{"javascript"},
			AppliesTo: []scanner.Tech{scanner.TechJavaScript},
		},
		{
			RepoURL: repoESLint, Rev: defaultRevs[repoESLint],
			HookID: "eslint", Name: "Lint code with ESLint",
			Priority: TierLint, Args: []string{"--fix"}, Types: []string{"javascript"},
			AppliesTo: []scanner.Tech{scanner.TechJavaScript},
		},

		// Framework-flavored variants.
		{
			RepoURL: repoESLint, Rev: defaultRevs[repoESLint],
			HookID: "eslint", Name: "Lint React code",
			Priority: TierFramework, Args: []string{"--fix"},
			AdditionalDependencies: []string{
				"eslint-plugin-react",
				"eslint-plugin-react-hooks",
				"eslint-plugin-jsx-a11y",
			},
			Files:     `.*\.(js|jsx|ts|tsx)$`,
			AppliesTo: []scanner.Tech{scanner.TechReact},
		},
		{
			RepoURL: repoESLint, Rev: defaultRevs[repoESLint],
			HookID: "eslint", Name: "Lint Vue code",
			Priority: TierFramework, Args: []string{"--fix"},
			AdditionalDependencies: []string{
				"eslint-plugin-vue",
				"@vue/eslint-config-typescript",
			},
			TypesOr:   []string{"vue", "javascript", "typescript"},
			AppliesTo: []scanner.Tech{scanner.TechVue},
		},
		{
			RepoURL: repoPrettier, Rev: defaultRevs[repoPrettier],
			HookID: "prettier", Name: "Format Vue code",
			Priority:               TierFramework,
			AdditionalDependencies: []string{"@vue/eslint-config-prettier"},
			TypesOr:                []string{"vue", "javascript", "typescript"},
			AppliesTo:              []scanner.Tech{scanner.TechVue},
		},
		{
			RepoURL: repoESLint, Rev: defaultRevs[repoESLint],
			HookID: "eslint", Name: "Lint Svelte code",
			Priority: TierFramework, Args: []string{"--fix"},
			AdditionalDependencies: []string{"eslint-plugin-svelte"},
			TypesOr:                []string{"svelte", "javascript", "typescript"},
			AppliesTo:              []scanner.Tech{scanner.TechSvelte},
		},
		{
			RepoURL: repoPrettier, Rev: defaultRevs[repoPrettier],
			HookID: "prettier", Name: "Format Svelte code",
			Priority:               TierFramework,
			AdditionalDependencies: []string{"prettier-plugin-svelte"},
			TypesOr:                []string{"svelte", "javascript", "typescript"},
			AppliesTo:              []scanner.Tech{scanner.TechSvelte},
		},

		// Markup and documents.
		def(repoCurlylint, "curlylint", "Lint HTML templates", TierLint, scanner.TechHTML),
		def(repoCSSLint, "csslint", "Lint CSS code", TierLint, scanner.TechCSS),
		def(repoYamllint, "yamllint", "Lint YAML files", TierLint, scanner.TechYAML),
		def(repoMarkdownlint, "markdownlint", "Lint Markdown files", TierLint, scanner.TechMarkdown),

		// Infrastructure.
		def(repoHadolint, "hadolint", "Lint Dockerfiles", TierLint, scanner.TechDocker),
		def(repoTerraform, "terraform_fmt", "Format Terraform code", TierFormat, scanner.TechTerraform),
		def(repoTerraform, "terraform_docs", "Generate Terraform docs", TierLint, scanner.TechTerraform),
		def(repoTFLint, "tflint", "Lint Terraform code", TierLint, scanner.TechTerraform),
		def(repoShellcheck, "shellcheck", "Lint shell scripts", TierLint, scanner.TechShell),

		// Go.
		def(repoGolangciLint, "golangci-lint", "Lint Go code", TierLint, scanner.TechGo),
		def(repoGolang, "go-fmt", "Format Go code", TierFormat, scanner.TechGo),
		def(repoGolang, "go-imports", "Format Go imports", TierFormat, scanner.TechGo),
		def(repoGolang, "go-vet", "Check Go code with vet", TierLint, scanner.TechGo),
		def(repoGolang, "go-critic", "Lint Go code with go-critic", TierLint, scanner.TechGo),

		// Rust.
		def(repoRust, "fmt", "Format Rust code with rustfmt", TierFormat, scanner.TechRust),
		def(repoRust, "cargo-check", "Check Rust code", TierLint, scanner.TechRust),
		def(repoRust, "clippy", "Lint Rust code with Clippy", TierLint, scanner.TechRust),
	}
	return defs
}

// PrePushDefinitions returns the opt-in push-stage hooks.
func PrePushDefinitions() []HookDefinition {
	return []HookDefinition{
		{
			RepoURL: repoPreCommitHooks, Rev: defaultRevs[repoPreCommitHooks],
			HookID: "no-commit-to-branch", Name: "Block direct commits to protected branches",
			Priority: TierWorkflow,
			Args:     []string{"--branch", "main", "--branch", "master"},
			Stages:   []string{"push"},
		},
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hookforge/cmd/ui/multiselect"
	"hookforge/cmd/ui/spinner"
	"hookforge/cmd/ui/summary"
	"hookforge/pkg/config"
	"hookforge/pkg/scanner"
)

const Version = "1.0.0"

// ConfigFileName is the generated output file, written to the scan root.
const ConfigFileName = ".pre-commit-config.yaml"

var (
	flagPath    string
	flagForce   bool
	flagDryRun  bool
	flagAuto    bool
	flagJSON    bool
	flagPrePush bool
	flagVerbose bool

	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
)

const logo = `
 _                 _     __
| |__   ___   ___ | | __/ _| ___  _ __ __ _  ___
| '_ \ / _ \ / _ \| |/ /| |_ / _ \| '__/ _` + "`" + ` |/ _ \
| | | | (_) | (_) |   < |  _| (_) | |  | (_| |  __/
|_| |_|\___/ \___/|_|\_\|_|  \___/|_|   \__, |\___|
                                        |___/
`

var rootCmd = &cobra.Command{
	Use:   "hookforge [PROJECT_PATH]",
	Short: "Generate a pre-commit config from your repository's tech stack",
	Long: logo + `
Hookforge scans a repository, detects the languages and frameworks in use,
and writes a .pre-commit-config.yaml with matching lint, format and security
hooks, ordered so security and hygiene checks always run first.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRootCommand,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	interactive := !flagAuto && !flagJSON && isTerminal()

	det, err := scanProject(root, cfg, interactive)
	if err != nil {
		return err
	}
	for _, w := range det.Warnings {
		logger.Debug(w)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(det)
	}

	if interactive {
		fmt.Print(logoStyle.Render(logo), "\n")
		fmt.Println(summary.Render(det))
	}

	outPath := filepath.Join(root, ConfigFileName)
	if !flagForce && !flagDryRun {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", ConfigFileName)
		}
	}

	selected := det.Present()
	if interactive && len(selected) > 0 {
		selected, err = selectTechnologies(det)
		if err != nil {
			return err
		}
		if selected == nil {
			fmt.Println("Aborted, no configuration written.")
			return nil
		}
	}

	content, warnings, err := generateConfig(root, det, selected, cfg, flagPrePush)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	if flagDryRun {
		fmt.Print(content)
		logger.Info("dry run, nothing written")
		return nil
	}

	if err := writeConfig(outPath, content, flagForce); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Generated " + ConfigFileName))
	fmt.Println(endingMsgStyle.Render("Run 'pre-commit install' to activate the hooks."))
	return nil
}

func resolveRoot(args []string) (string, error) {
	root := flagPath
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", root)
	}
	return root, nil
}

func scanProject(root string, cfg *config.Config, interactive bool) (*scanner.Result, error) {
	var opts []scanner.Option
	if cfg.MaxFiles > 0 {
		opts = append(opts, scanner.WithMaxFiles(cfg.MaxFiles))
	}
	if cfg.MaxFileSize > 0 {
		opts = append(opts, scanner.WithMaxFileSize(cfg.MaxFileSize))
	}
	sc := scanner.New(scanner.DefaultCatalog(), opts...)

	if !interactive {
		return sc.Scan(root)
	}

	spinnerProgram := tea.NewProgram(spinner.New("Scanning repository..."))
	go func() {
		// The spinner is killed once the scan returns; the resulting
		// error is expected and not worth reporting.
		_, _ = spinnerProgram.Run()
	}()
	det, err := sc.Scan(root)
	spinnerProgram.Quit()
	spinnerProgram.Wait()
	return det, err
}

// selectTechnologies runs the interactive picker. A nil slice means the user
// aborted; an empty slice means "base hooks only".
func selectTechnologies(det *scanner.Result) ([]scanner.Tech, error) {
	present := det.Present()
	choices := make([]multiselect.Choice, 0, len(present))
	for _, tech := range present {
		tr := det.Techs[tech]
		desc := fmt.Sprintf("%d file(s), confidence %.0f%%", tr.EvidenceCount, tr.Confidence*100)
		if tr.Version != "" {
			desc += ", version " + tr.Version
		}
		choices = append(choices, multiselect.Choice{
			Label:    string(tech),
			Desc:     desc,
			Selected: tr.Confidence > 0.6,
		})
	}

	picked, err := multiselect.Run("Select technologies to include hooks for", choices)
	if err != nil {
		return nil, err
	}
	if picked == nil {
		return nil, nil
	}
	selected := make([]scanner.Tech, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, present[i])
	}
	return selected, nil
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("hookforge version {{.Version}}\n")

	rootCmd.AddCommand(detectCmd)

	rootCmd.Flags().StringVar(&flagPath, "path", "", "Path to the repository (default: current directory)")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing "+ConfigFileName)
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the configuration without writing it")
	rootCmd.Flags().BoolVar(&flagAuto, "auto", false, "Accept all detected technologies (non-interactive)")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit the detection result as JSON and exit")
	rootCmd.Flags().BoolVar(&flagPrePush, "pre-push", false, "Include push-stage hooks (branch protection)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

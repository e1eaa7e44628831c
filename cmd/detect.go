package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"hookforge/pkg/config"
)

// detectCmd runs detection only and prints the result as JSON, for CI and
// scripting use.
var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Detect the technology stack and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	det, err := scanProject(root, cfg, false)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(det)
}

func init() {
	detectCmd.Flags().StringVar(&flagPath, "path", "", "Path to the repository (default: current directory)")
}

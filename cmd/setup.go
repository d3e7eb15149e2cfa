package cmd

import (
	"fmt"

	"github.com/fileandclaim/fcidash/internal/config"
	"github.com/fileandclaim/fcidash/internal/logging"
	"github.com/fileandclaim/fcidash/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Seed from the file alone so environment overrides are not persisted.
	fileCfg, err := config.LoadFile(config.ConfigPath())
	if err != nil {
		log.Warn("existing config unreadable, starting from defaults", logging.FieldError, err)
	}

	vals := tui.SetupValuesFrom(fileCfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	vals.Apply(&fileCfg)

	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fcidash setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

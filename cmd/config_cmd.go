package cmd

import (
	"fmt"

	"github.com/fileandclaim/fcidash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Files]")
	fmt.Printf("    Deals:          %s\n", cfg.Files.Deals)
	fmt.Printf("    Deals sheet:    %s\n", sheetName(cfg.Files.DealsSheet))
	fmt.Printf("    File tracking:  %s\n", cfg.Files.FileTracking)
	fmt.Printf("    Tracking sheet: %s\n", sheetName(cfg.Files.FileTrackingSheet))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s\n",
		config.EnvDealsFile, config.EnvTrackingFile, config.EnvTheme, config.EnvAddr)
	fmt.Println("  Run `fcidash setup` to reconfigure.")
	return nil
}

func sheetName(s string) string {
	if s == "" {
		return "(first sheet)"
	}
	return s
}
